package logger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field type alias so callers do not import zap directly
type Field = zap.Field

// String constructs a field that carries a string value
func String(key, val string) Field {
	return zap.String(key, val)
}

// Err constructs a field that carries an error
func Err(err error) Field {
	return zap.Error(err)
}

// Int constructs a field that carries an int value
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

// Duration constructs a field that carries a time.Duration value
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// VehicleID tags a record with the vehicle it concerns
func VehicleID(id int64) Field {
	return zap.Int64("vehicle_id", id)
}

// ViewerID tags a record with the viewer it concerns
func ViewerID(id uuid.UUID) Field {
	return zap.String("viewer_id", id.String())
}
