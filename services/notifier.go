package services

import (
	"sync"
	"time"

	"rental-admin/models"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

// ToastPolicy decides what a new toast does to the ones already shown.
type ToastPolicy string

const (
	// ToastReplace removes the previous toast of the same role.
	ToastReplace ToastPolicy = "replace"
	// ToastStack keeps previous toasts in the container.
	ToastStack ToastPolicy = "stack"
)

const defaultToastRole = "main"

type Toast struct {
	Role      string    `json:"role"`
	Kind      ToastKind `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	DismissMS int64     `json:"dismissMs"`
}

// Notifier collects the toasts of one page view.
type Notifier struct {
	mu       sync.Mutex
	policy   ToastPolicy
	duration time.Duration
	toasts   []Toast
}

func NewNotifier(policy ToastPolicy, duration time.Duration) *Notifier {
	if policy != ToastStack {
		policy = ToastReplace
	}
	if duration <= 0 {
		duration = 4 * time.Second
	}
	return &Notifier{policy: policy, duration: duration}
}

func (n *Notifier) Show(message string, kind ToastKind) {
	n.Push(Toast{Kind: kind, Message: message})
}

// ShowTitled shows a toast whose title names the operation.
func (n *Notifier) ShowTitled(title, message string, kind ToastKind) {
	n.Push(Toast{Kind: kind, Title: title, Message: message})
}

func (n *Notifier) Push(t Toast) {
	if t.Role == "" {
		t.Role = defaultToastRole
	}
	if t.DismissMS == 0 {
		t.DismissMS = n.duration.Milliseconds()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.policy == ToastReplace {
		kept := n.toasts[:0]
		for _, prev := range n.toasts {
			if prev.Role != t.Role {
				kept = append(kept, prev)
			}
		}
		n.toasts = kept
	}
	n.toasts = append(n.toasts, t)
}

// Toasts returns the toasts currently shown.
func (n *Notifier) Toasts() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = nil
}

// Persist keeps the toasts in the browser storage so they survive a
// redirect.
func (n *Notifier) Persist(storage *ClientStorage) error {
	toasts := n.Toasts()
	if len(toasts) == 0 {
		return nil
	}
	return storage.Set(models.KeyToast, toasts)
}

// Restore shows the toasts persisted by the previous request and removes
// them from storage.
func (n *Notifier) Restore(storage *ClientStorage) error {
	var toasts []Toast
	ok, err := storage.Get(models.KeyToast, &toasts)
	if err != nil || !ok {
		return err
	}
	for _, t := range toasts {
		n.Push(t)
	}
	return storage.Remove(models.KeyToast)
}
