package dto

import (
	"chatfolders-be/pkg/syncer"
)

// SyncPushRequest carries the device's full folder snapshot. The server
// merges it with the stored copy and returns the reconciled list.
type SyncPushRequest struct {
	DeviceId string          `json:"device_id" validate:"required,max=64"`
	Folders  []syncer.Folder `json:"folders"`
}

type SyncPushResponse struct {
	State   syncer.State    `json:"state"`
	Folders []syncer.Folder `json:"folders"`
	// Error is filled when State is "error"; the device keeps its local
	// data and may retry.
	Error string `json:"error,omitempty"`
}

type SyncStateRequest struct {
	DeviceId string `json:"device_id" validate:"required,max=64"`
}

type SyncStateResponse struct {
	State     syncer.State `json:"state"`
	LastError string       `json:"last_error,omitempty"`
}

type EnableSyncRequest struct {
	DeviceId string `json:"device_id" validate:"required,max=64"`
}

type EnableSyncResponse struct {
	State syncer.State `json:"state"`
}
