/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthz

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	libhealthz "github.com/hyperledger/fabric-lib-go/healthz"
)

const (
	StatusOK          = "OK"
	StatusDegraded    = "DEGRADED"
	StatusUnavailable = "UNAVAILABLE"
)

// ReadinessChecker reports whether a component can serve requests.
type ReadinessChecker interface {
	ReadinessCheck(ctx context.Context) error
}

// DetailedChecker is a ReadinessChecker that also describes its state.
type DetailedChecker interface {
	ReadinessChecker
	GetStatus() ComponentStatus
}

type ComponentStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type DetailedStatus struct {
	Status       string                     `json:"status"`
	Time         time.Time                  `json:"time"`
	Components   map[string]ComponentStatus `json:"components"`
	FailedChecks []libhealthz.FailedCheck   `json:"failed_checks,omitempty"`
}

// ReadinessHandler serves /readyz. Unlike liveness, a component reporting
// UNAVAILABLE fails the whole probe; DEGRADED components do not.
type ReadinessHandler struct {
	mutex    sync.RWMutex
	checkers map[string]ReadinessChecker
	timeout  time.Duration
	clock    clock.Clock
}

func NewReadinessHandler() *ReadinessHandler {
	return NewReadinessHandlerWithClock(clock.NewClock())
}

// NewReadinessHandlerWithClock returns a handler that stamps its reports
// with the time of c.
func NewReadinessHandlerWithClock(c clock.Clock) *ReadinessHandler {
	return &ReadinessHandler{
		checkers: map[string]ReadinessChecker{},
		timeout:  10 * time.Second,
		clock:    c,
	}
}

func (h *ReadinessHandler) RegisterChecker(component string, checker ReadinessChecker) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.checkers[component]; ok {
		return libhealthz.AlreadyRegisteredError(component)
	}
	h.checkers[component] = checker
	return nil
}

func (h *ReadinessHandler) DeregisterChecker(component string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.checkers, component)
}

func (h *ReadinessHandler) SetTimeout(timeout time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.timeout = timeout
}

// RunChecks returns the components whose readiness check failed, ordered by
// component name.
func (h *ReadinessHandler) RunChecks(ctx context.Context) []libhealthz.FailedCheck {
	var failed []libhealthz.FailedCheck
	for component, status := range h.statuses(ctx) {
		if status.Status == StatusUnavailable {
			failed = append(failed, libhealthz.FailedCheck{Component: component, Reason: status.Message})
		}
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i].Component < failed[j].Component })
	return failed
}

func (h *ReadinessHandler) GetDetailedStatus(ctx context.Context) DetailedStatus {
	components := h.statuses(ctx)

	status := DetailedStatus{Status: StatusOK, Time: h.clock.Now(), Components: components}
	for component, cs := range components {
		switch cs.Status {
		case StatusUnavailable:
			status.Status = StatusUnavailable
			status.FailedChecks = append(status.FailedChecks, libhealthz.FailedCheck{Component: component, Reason: cs.Message})
		case StatusDegraded:
			if status.Status == StatusOK {
				status.Status = StatusDegraded
			}
		}
	}
	sort.Slice(status.FailedChecks, func(i, j int) bool {
		return status.FailedChecks[i].Component < status.FailedChecks[j].Component
	})
	return status
}

func (h *ReadinessHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.mutex.RLock()
	timeout := h.timeout
	h.mutex.RUnlock()

	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()

	status := h.GetDetailedStatus(ctx)
	resp, err := json.Marshal(status)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnavailable {
		rw.WriteHeader(http.StatusServiceUnavailable)
	} else {
		rw.WriteHeader(http.StatusOK)
	}
	rw.Write(resp)
}

func (h *ReadinessHandler) statuses(ctx context.Context) map[string]ComponentStatus {
	h.mutex.RLock()
	checkers := make(map[string]ReadinessChecker, len(h.checkers))
	for component, checker := range h.checkers {
		checkers[component] = checker
	}
	h.mutex.RUnlock()

	statuses := make(map[string]ComponentStatus, len(checkers))
	for component, checker := range checkers {
		statuses[component] = check(ctx, checker)
	}
	return statuses
}

func check(ctx context.Context, checker ReadinessChecker) ComponentStatus {
	if err := checker.ReadinessCheck(ctx); err != nil {
		return ComponentStatus{Status: StatusUnavailable, Message: err.Error()}
	}
	if detailed, ok := checker.(DetailedChecker); ok {
		status := detailed.GetStatus()
		if status.Status == "" {
			status.Status = StatusOK
		}
		return status
	}
	return ComponentStatus{Status: StatusOK}
}
