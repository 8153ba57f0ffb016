package concierge

import "context"

// HandlerFunc handles an Invocation of a command. BeforeEach and AfterEach
// hooks share the same shape.
type HandlerFunc func(ctx context.Context, inv *Invocation) error
