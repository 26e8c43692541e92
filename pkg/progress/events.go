package progress

import "time"

const (
	EventTypePing                  = "ping"
	EventTypePong                  = "pong"
	EventTypeProgressUpdate        = "progress_update"
	EventTypeEnhancedProgress      = "enhanced_progress_update"
	EventTypeBulkOperationStart    = "bulk_operation_start"
	EventTypeBulkOperationUpdate   = "bulk_operation_update"
	EventTypeBulkOperationComplete = "bulk_operation_complete"
	EventTypeClearProgress         = "clear_progress"
)

// Event is any message pushed to observers over the websocket channel
type Event interface {
	EventType() string
}

// Ping is the periodic server liveness probe
type Ping struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (Ping) EventType() string { return EventTypePing }

// Pong acknowledges an observer-issued ping, echoing its timestamp
type Pong struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (Pong) EventType() string { return EventTypePong }

// ProgressUpdate is a simple single-step progress event
type ProgressUpdate struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Progress  int       `json:"progress"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (ProgressUpdate) EventType() string { return EventTypeProgressUpdate }

// Details carries display metadata alongside an enhanced progress event
type Details struct {
	PosterURL    string `json:"poster_url,omitempty"`
	SeasonNumber int    `json:"season_number,omitempty"`
}

// EnhancedProgressUpdate is a step-aware progress event for a single item run
type EnhancedProgressUpdate struct {
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	Progress      int       `json:"progress"`
	Status        string    `json:"status"`
	ShowTitle     string    `json:"show_title"`
	OperationType string    `json:"operation_type"`
	CurrentStep   string    `json:"current_step"`
	Details       Details   `json:"details"`
	Timestamp     time.Time `json:"timestamp"`
}

func (EnhancedProgressUpdate) EventType() string { return EventTypeEnhancedProgress }

// BulkItem identifies one item of a bulk operation in a start event
type BulkItem struct {
	ShowID       int64  `json:"show_id"`
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name,omitempty"`
}

// BulkOperationStart announces a new bulk operation to observers
type BulkOperationStart struct {
	Type          string     `json:"type"`
	OperationID   string     `json:"operation_id"`
	OperationType string     `json:"operation_type"`
	TotalItems    int        `json:"total_items"`
	Items         []BulkItem `json:"items"`
	Message       string     `json:"message"`
	Timestamp     time.Time  `json:"timestamp"`
}

func (BulkOperationStart) EventType() string { return EventTypeBulkOperationStart }

// BulkOperationUpdate reports aggregate progress after each finished item
type BulkOperationUpdate struct {
	Type                string    `json:"type"`
	OperationID         string    `json:"operation_id"`
	OverallProgress     int       `json:"overall_progress"`
	CurrentItem         int       `json:"current_item"`
	CurrentItemName     string    `json:"current_item_name"`
	CurrentItemProgress int       `json:"current_item_progress"`
	CompletedItems      int       `json:"completed_items"`
	FailedItems         int       `json:"failed_items"`
	PosterURL           string    `json:"poster_url,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

func (BulkOperationUpdate) EventType() string { return EventTypeBulkOperationUpdate }

// BulkOperationComplete is the terminal event for a bulk operation
type BulkOperationComplete struct {
	Type           string    `json:"type"`
	OperationID    string    `json:"operation_id"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	CompletedItems []string  `json:"completed_items"`
	FailedItems    []string  `json:"failed_items"`
	SuccessCount   int       `json:"success_count"`
	FailureCount   int       `json:"failure_count"`
	Timestamp      time.Time `json:"timestamp"`
}

func (BulkOperationComplete) EventType() string { return EventTypeBulkOperationComplete }

// ClearProgress instructs observers to immediately hide any progress display
type ClearProgress struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

func (ClearProgress) EventType() string { return EventTypeClearProgress }
