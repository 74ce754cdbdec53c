package notify

import "sync"

// PropertyChangedEventArgs describes a property change
type PropertyChangedEventArgs struct {
	PropertyName string
}

// PropertyChangedHandler receives property change notifications
type PropertyChangedHandler func(sender any, e PropertyChangedEventArgs)

// PropertyChangedEvent is embedded by types that expose observable fields.
// The zero value has no subscribers and is ready to use.
type PropertyChangedEvent struct {
	mu       sync.Mutex
	nextID   int
	handlers []propertyChangedSubscription
}

type propertyChangedSubscription struct {
	id int
	fn PropertyChangedHandler
}

// SubscribePropertyChanged registers fn and returns a function that removes it
func (e *PropertyChangedEvent) SubscribePropertyChanged(fn PropertyChangedHandler) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, propertyChangedSubscription{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// RaisePropertyChanged invokes the registered handlers with sender and
// propertyName. It does nothing when no handler is registered.
func (e *PropertyChangedEvent) RaisePropertyChanged(sender any, propertyName string) {
	e.mu.Lock()
	if len(e.handlers) == 0 {
		e.mu.Unlock()
		return
	}
	handlers := make([]propertyChangedSubscription, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.Unlock()

	args := PropertyChangedEventArgs{PropertyName: propertyName}
	for _, h := range handlers {
		if h.fn != nil {
			h.fn(sender, args)
		}
	}
}

// Command is an action that can be bound to a UI element
type Command interface {
	// CanExecute reports whether Execute may run with parameter
	CanExecute(parameter any) bool
	// Execute runs the command
	Execute(parameter any)
	// SubscribeCanExecuteChanged registers fn for enablement changes
	SubscribeCanExecuteChanged(fn func(sender any)) (unsubscribe func())
}

// commandEvents holds CanExecuteChanged subscribers. Relay commands are
// always enabled, so nothing raises it.
type commandEvents struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(sender any)
}

// SubscribeCanExecuteChanged registers fn and returns a function that removes it
func (c *commandEvents) SubscribeCanExecuteChanged(fn func(sender any)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handlers == nil {
		c.handlers = make(map[int]func(sender any))
	}
	c.nextID++
	id := c.nextID
	c.handlers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers, id)
	}
}

// RelayCommand runs a function without arguments
type RelayCommand struct {
	commandEvents
	execute func()
}

// NewRelayCommand creates a command bound to execute
func NewRelayCommand(execute func()) *RelayCommand {
	return &RelayCommand{execute: execute}
}

// CanExecute always returns true
func (c *RelayCommand) CanExecute(parameter any) bool {
	return true
}

// Execute invokes the bound function; parameter is ignored
func (c *RelayCommand) Execute(parameter any) {
	if c.execute != nil {
		c.execute()
	}
}

// RelayCommandOf runs a function taking one argument of type T
type RelayCommandOf[T any] struct {
	commandEvents
	execute func(T)
}

// NewRelayCommandOf creates a command bound to execute
func NewRelayCommandOf[T any](execute func(T)) *RelayCommandOf[T] {
	return &RelayCommandOf[T]{execute: execute}
}

// CanExecute always returns true
func (c *RelayCommandOf[T]) CanExecute(parameter any) bool {
	return true
}

// Execute invokes the bound function with parameter converted to T, or with
// the zero value of T when parameter is not a T.
func (c *RelayCommandOf[T]) Execute(parameter any) {
	var param T
	if v, ok := parameter.(T); ok {
		param = v
	}
	if c.execute != nil {
		c.execute(param)
	}
}
