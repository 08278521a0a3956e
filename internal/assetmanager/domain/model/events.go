package model

import "time"

// ChangeEvent describes one change to a server's metadata, as published on the out topic.
type ChangeEvent struct {
	// EventID is assigned by the event store and doubles as a resume token.
	EventID            string                 `json:"eventId,omitempty"`
	EventType          string                 `json:"eventType"`
	ServerName         string                 `json:"serverName"`
	UserID             string                 `json:"userId"`
	EventTime          time.Time              `json:"eventTime"`
	ElementGUID        string                 `json:"elementGUID,omitempty"`
	TypeName           string                 `json:"typeName"`
	End1GUID           string                 `json:"end1GUID,omitempty"`
	End2GUID           string                 `json:"end2GUID,omitempty"`
	ClassificationName string                 `json:"classificationName,omitempty"`
	Properties         map[string]interface{} `json:"properties,omitempty"`
}
