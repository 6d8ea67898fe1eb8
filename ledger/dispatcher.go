// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/log"
)

// Dispatcher delivers ledger events to the single handler registered on an
// adaptor.
//
// Raising an event never blocks: events are appended to an unbounded FIFO
// buffer and a dedicated goroutine hands them to the handler one at a time,
// in raise order. A slow handler therefore delays only this dispatcher's
// further deliveries, never the component raising the events.
//
// Events raised while no handler is registered stay buffered and are
// delivered once one is. Replacing the handler detaches the previous one;
// the swap is serialized with delivery, so no event is ever handed to two
// handlers and no hand-off race is exposed to callers.
type Dispatcher struct {
	log.Logger

	mtx     sync.Mutex
	handler ilp.LedgerEventHandler
	buf     *deque.Deque[ilp.LedgerEvent]

	wake chan struct{}
	done chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher returns a dispatcher with its delivery goroutine running and
// no handler registered.
func NewDispatcher(logger log.Logger) *Dispatcher {
	d := &Dispatcher{
		Logger: logger,
		buf:    new(deque.Deque[ilp.LedgerEvent]),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.deliver()
	return d
}

// SetHandler registers the handler, replacing and detaching any previously
// registered one. A nil handler detaches without replacement; buffered and
// future events are then held until a handler is registered again.
func (d *Dispatcher) SetHandler(handler ilp.LedgerEventHandler) {
	d.mtx.Lock()
	d.handler = handler
	d.mtx.Unlock()
	d.signal()
}

// Raise enqueues the event for delivery and returns immediately.
// Events raised after Close are dropped.
func (d *Dispatcher) Raise(event ilp.LedgerEvent) {
	select {
	case <-d.done:
		d.Debugf("Dropping event raised after close: %T", event)
		return
	default:
	}

	d.mtx.Lock()
	d.buf.PushBack(event)
	d.mtx.Unlock()
	d.signal()
}

// Close stops the delivery goroutine. Events still buffered are dropped;
// an event already handed to the handler completes normally.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}

func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) deliver() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case <-d.wake:
		}

		for {
			d.mtx.Lock()
			if d.buf.Len() == 0 || d.handler == nil {
				d.mtx.Unlock()
				break
			}
			event := d.buf.PopFront()
			handler := d.handler
			d.mtx.Unlock()

			select {
			case <-d.done:
				return
			default:
			}
			// The handler runs outside the lock, so SetHandler and Raise
			// are never blocked by a slow handler.
			handler(event)
		}
	}
}
