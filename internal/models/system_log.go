package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// SystemLogCollection holds ERROR+ records written by the log sink.
const SystemLogCollection = "system_logs"

// SystemLog stores structured error logs for later querying.
type SystemLog struct {
	ID        string    `bson:"_id" json:"id"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Level     string    `bson:"level" json:"level"`
	Message   string    `bson:"message" json:"message"`
	TraceID   string    `bson:"traceId,omitempty" json:"trace_id"`
	UserID    string    `bson:"userId,omitempty" json:"user_id"`
	Action    string    `bson:"action,omitempty" json:"action"`
	Error     string    `bson:"error,omitempty" json:"error"`
	LatencyMs int       `bson:"latencyMs,omitempty" json:"latency_ms"`
	Extra     bson.M    `bson:"extra,omitempty" json:"extra"`
}
