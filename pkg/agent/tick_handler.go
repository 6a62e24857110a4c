package agent

import "context"

// tickHandler is one step of a loop iteration. Each step does its work and
// hands over to the next one; a step only fails when ctx is cancelled.
type tickHandler interface {
	execute(ctx context.Context) error
	setNext(tickHandler)
}

type baseHandler struct {
	next  tickHandler
	agent *Agent
}

func (bh *baseHandler) setNext(next tickHandler) {
	bh.next = next
}

func (bh *baseHandler) forward(ctx context.Context) error {
	if bh.next == nil {
		return nil
	}
	return bh.next.execute(ctx)
}

type linkHandler struct {
	baseHandler
}

func (lh *linkHandler) execute(ctx context.Context) error {
	if !lh.agent.link.Connected() {
		if err := lh.agent.link.EnsureConnected(ctx); err != nil {
			return err
		}
	}
	return lh.forward(ctx)
}

type sessionHandler struct {
	baseHandler
}

func (sh *sessionHandler) execute(ctx context.Context) error {
	if !sh.agent.session.Connected() {
		if err := sh.agent.session.EnsureSession(ctx); err != nil {
			return err
		}
	}
	return sh.forward(ctx)
}

type serviceHandler struct {
	baseHandler
}

func (sh *serviceHandler) execute(ctx context.Context) error {
	sh.agent.session.ServiceSession()
	return sh.forward(ctx)
}

type publishHandler struct {
	baseHandler
}

func (ph *publishHandler) execute(ctx context.Context) error {
	a := ph.agent
	now := a.now()
	if now.Sub(a.lastPublish) >= a.period {
		a.lastPublish = now
		a.publishCycle(ctx)
	}
	return ph.forward(ctx)
}

func newTickChain(a *Agent) tickHandler {
	handlers := []tickHandler{
		&linkHandler{baseHandler{agent: a}},
		&sessionHandler{baseHandler{agent: a}},
		&serviceHandler{baseHandler{agent: a}},
		&publishHandler{baseHandler{agent: a}},
	}
	for i := 0; i < len(handlers)-1; i++ {
		handlers[i].setNext(handlers[i+1])
	}
	return handlers[0]
}
