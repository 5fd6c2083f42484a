package domain

import "context"

// PredictionClient talks to the external property predictor.
type PredictionClient interface {
	Components(ctx context.Context) (*Catalog, error)
	Predict(ctx context.Context, fuel FuelType, recipe Recipe) (*BlendResult, error)
}

// BlendStore archives produced blend results. Implementations can be
// in-memory or SQLite.
type BlendStore interface {
	Save(ctx context.Context, result *BlendResult) error
	Load(ctx context.Context, id string) (*BlendResult, error)
	List(ctx context.Context, fuel FuelType) ([]*BlendResult, error)
	Delete(ctx context.Context, id string) error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers transient notices to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
