package gateway

import (
	"context"
	"fmt"
	"net/http"

	httpclient "github.com/piresc/fleetmap/internal/pkg/http"
	"github.com/piresc/fleetmap/internal/pkg/logger"
	"github.com/piresc/fleetmap/internal/pkg/models"
	"github.com/piresc/fleetmap/services/fleetmap"
)

// Fleet API endpoints
const (
	EndpointVehicles         = "/v1/vehicles"
	EndpointMechanicVehicles = "/v1/mechanic/vehicles"
	EndpointMechanicDelivery = "/v1/mechanic/delivery"
	EndpointMe               = "/v1/me"
)

type vehicleListResponse struct {
	Vehicles []models.VehicleRecord `json:"vehicles"`
}

type deliveryResponse struct {
	Vehicle *models.VehicleRecord `json:"vehicle"`
}

// HTTPGateway reads vehicles and viewer sessions from the fleet REST API
type HTTPGateway struct {
	apiClient *httpclient.APIKeyClient
}

// NewHTTPGateway creates a gateway for the configured fleet API
func NewHTTPGateway(cfg models.FleetAPIConfig) *HTTPGateway {
	return &HTTPGateway{
		apiClient: httpclient.NewAPIKeyClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout),
	}
}

var (
	_ fleetmap.VehicleGW = (*HTTPGateway)(nil)
	_ fleetmap.ViewerGW  = (*HTTPGateway)(nil)
)

// AllVehicles returns the public fleet
func (gw *HTTPGateway) AllVehicles(ctx context.Context) ([]models.VehicleRecord, error) {
	return gw.vehicleList(ctx, EndpointVehicles)
}

// MechanicVehicles returns the vehicles assigned to the calling mechanic
func (gw *HTTPGateway) MechanicVehicles(ctx context.Context) ([]models.VehicleRecord, error) {
	return gw.vehicleList(ctx, EndpointMechanicVehicles)
}

func (gw *HTTPGateway) vehicleList(ctx context.Context, endpoint string) ([]models.VehicleRecord, error) {
	var resp vehicleListResponse
	if err := gw.apiClient.GetJSON(ctx, endpoint, &resp); err != nil {
		logger.Warn("Failed to fetch vehicles",
			logger.String("endpoint", endpoint),
			logger.Err(err))
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	return resp.Vehicles, nil
}

// CurrentDelivery returns the mechanic's delivery vehicle. A 404 means there
// is none and yields fleetmap.ErrNoCurrentDelivery.
func (gw *HTTPGateway) CurrentDelivery(ctx context.Context) (*models.VehicleRecord, error) {
	var resp deliveryResponse
	err := gw.apiClient.GetJSON(ctx, EndpointMechanicDelivery, &resp)
	if httpclient.IsStatus(err, http.StatusNotFound) {
		return nil, fleetmap.ErrNoCurrentDelivery
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current delivery: %w", err)
	}
	if resp.Vehicle == nil {
		return nil, fleetmap.ErrNoCurrentDelivery
	}
	return resp.Vehicle, nil
}

// CurrentViewer returns the caller's rental and assignment state
func (gw *HTTPGateway) CurrentViewer(ctx context.Context) (*models.Viewer, error) {
	var viewer models.Viewer
	if err := gw.apiClient.GetJSON(ctx, EndpointMe, &viewer); err != nil {
		return nil, fmt.Errorf("failed to fetch viewer session: %w", err)
	}
	return &viewer, nil
}
