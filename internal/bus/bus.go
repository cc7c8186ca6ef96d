// Package bus implements the topic based publish/subscribe dispatcher shared by the network
// layer and the views. A single Bus is constructed at startup and handed to every component
// that needs it.
package bus

import (
	"reflect"
	"sync"

	"golang.org/x/exp/slices"
)

// Publisher is anything capable of accepting messages destined for subscribers.
type Publisher interface {
	Publish(msg Message)
}

// Handler receives a message that was published on a topic the handler is subscribed to.
type Handler func(msg Message)

type subscription struct {
	id      uint64
	handler Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers:   make(map[Topic][]subscription),
		handlersMu: &sync.RWMutex{},
	}
}

// Bus delivers messages synchronously to the handlers subscribed to the messages topic. Handlers
// are called in the order they subscribed, on the publishing goroutine.
type Bus struct {
	handlers   map[Topic][]subscription
	handlersMu *sync.RWMutex
	nextID     uint64
}

// Subscribe registers a handler for the topic. The returned func removes the handler again.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()

	b.nextID++
	subID := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: subID, handler: handler})

	return func() {
		b.handlersMu.Lock()
		defer b.handlersMu.Unlock()

		b.handlers[topic] = slices.DeleteFunc(b.handlers[topic], func(sub subscription) bool {
			return sub.id == subID
		})
	}
}

// Publish sends the message to every handler registered for its topic. Handlers may themselves
// publish or subscribe.
func (b *Bus) Publish(msg Message) {
	if msg == nil {
		return
	}

	b.handlersMu.RLock()
	subs := slices.Clone(b.handlers[msg.Topic()])
	b.handlersMu.RUnlock()

	for _, sub := range subs {
		sub.handler(msg)
	}
}

// On subscribes a handler typed to a single message type. The topic is taken from the message type
// so the topic name and the payload shape cannot disagree. Pointer types only receive messages
// that were published as pointers.
func On[T Message](b *Bus, handler func(T)) func() {
	return b.Subscribe(topicOf[T](), func(msg Message) {
		if typed, ok := msg.(T); ok {
			handler(typed)
		}
	})
}

// topicOf resolves the topic of T without calling a method on a nil pointer.
func topicOf[T Message]() Topic {
	msgType := reflect.TypeFor[T]()
	if msgType.Kind() == reflect.Pointer {
		msg, _ := reflect.New(msgType.Elem()).Interface().(Message)

		return msg.Topic()
	}

	var zero T

	return zero.Topic()
}
