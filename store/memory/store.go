package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xraph/certpay"
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/report"
	"github.com/xraph/certpay/subscription"
)

type Store struct {
	mu sync.RWMutex

	// Organization storage
	organizations map[string]*org.Organization
	users         map[string]*org.User
	memberships   map[string]*org.Membership // keyed by orgID:userID

	// Project storage
	projects   map[string]*project.Project
	workers    map[string]*project.Worker
	timesheets []project.TimesheetEntry

	// Payroll storage
	runs       map[string]*payroll.Run
	reports    map[string]*report.ComplianceReport
	rejections map[string][]*report.Rejection // keyed by report ID

	// Subscription storage, one per organization
	subscriptions map[string]*subscription.Subscription

	// Processed webhook event IDs
	webhookEvents map[string]time.Time
}

func New() *Store {
	return &Store{
		organizations: make(map[string]*org.Organization),
		users:         make(map[string]*org.User),
		memberships:   make(map[string]*org.Membership),
		projects:      make(map[string]*project.Project),
		workers:       make(map[string]*project.Worker),
		timesheets:    make([]project.TimesheetEntry, 0),
		runs:          make(map[string]*payroll.Run),
		reports:       make(map[string]*report.ComplianceReport),
		rejections:    make(map[string][]*report.Rejection),
		subscriptions: make(map[string]*subscription.Subscription),
		webhookEvents: make(map[string]time.Time),
	}
}

func membershipKey(orgID id.OrganizationID, userID id.UserID) string {
	return fmt.Sprintf("%s:%s", orgID.String(), userID.String())
}

// Reads and writes both copy, so callers never share a struct with the
// store: mutating a returned value is invisible until the matching Update.
func copyRun(r *payroll.Run) *payroll.Run {
	c := *r
	c.WorkerSummaries = append([]payroll.WorkerSummary(nil), r.WorkerSummaries...)
	return &c
}

// Organization Store implementation
func (s *Store) CreateOrganization(_ context.Context, o *org.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[o.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *o
	s.organizations[o.ID.String()] = &c
	return nil
}

func (s *Store) GetOrganization(_ context.Context, orgID id.OrganizationID) (*org.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if o, ok := s.organizations[orgID.String()]; ok {
		c := *o
		return &c, nil
	}
	return nil, certpay.ErrOrganizationNotFound
}

func (s *Store) CreateUser(_ context.Context, u *org.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *u
	s.users[u.ID.String()] = &c
	return nil
}

func (s *Store) GetUser(_ context.Context, userID id.UserID) (*org.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[userID.String()]; ok {
		c := *u
		return &c, nil
	}
	return nil, certpay.ErrUserNotFound
}

func (s *Store) CreateMembership(_ context.Context, m *org.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey(m.OrganizationID, m.UserID)
	if _, exists := s.memberships[key]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *m
	s.memberships[key] = &c
	return nil
}

func (s *Store) GetMembership(_ context.Context, orgID id.OrganizationID, userID id.UserID) (*org.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.memberships[membershipKey(orgID, userID)]; ok {
		c := *m
		return &c, nil
	}
	return nil, certpay.ErrMembershipNotFound
}

// Project Store implementation
func (s *Store) CreateProject(_ context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *p
	s.projects[p.ID.String()] = &c
	return nil
}

func (s *Store) GetProject(_ context.Context, projectID id.ProjectID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.projects[projectID.String()]; ok {
		c := *p
		return &c, nil
	}
	return nil, certpay.ErrProjectNotFound
}

func (s *Store) ListProjects(_ context.Context, orgID id.OrganizationID) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Project, 0)
	for _, p := range s.projects {
		if p.OrganizationID == orgID {
			c := *p
			result = append(result, &c)
		}
	}
	return result, nil
}

func (s *Store) CreateWorker(_ context.Context, w *project.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workers[w.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *w
	s.workers[w.ID.String()] = &c
	return nil
}

func (s *Store) GetWorker(_ context.Context, workerID id.WorkerID) (*project.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.workers[workerID.String()]; ok {
		c := *w
		return &c, nil
	}
	return nil, certpay.ErrWorkerNotFound
}

func (s *Store) ListWorkers(_ context.Context, projectID id.ProjectID) ([]*project.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Worker, 0)
	for _, w := range s.workers {
		if w.ProjectID == projectID {
			c := *w
			result = append(result, &c)
		}
	}
	return result, nil
}

func (s *Store) CreateTimesheetEntry(_ context.Context, e *project.TimesheetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timesheets = append(s.timesheets, *e)
	return nil
}

func (s *Store) ListTimesheetEntries(_ context.Context, projectID id.ProjectID, periodStart, periodEnd time.Time) ([]*project.TimesheetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.TimesheetEntry, 0)
	for i := range s.timesheets {
		if s.timesheets[i].ProjectID != projectID {
			continue
		}
		// Period bounds are inclusive on both ends.
		if s.timesheets[i].WorkDate.Before(periodStart) || s.timesheets[i].WorkDate.After(periodEnd) {
			continue
		}
		e := s.timesheets[i]
		result = append(result, &e)
	}
	return result, nil
}

// Payroll Store implementation
func (s *Store) CreateRun(_ context.Context, r *payroll.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[r.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	s.runs[r.ID.String()] = copyRun(r)
	return nil
}

func (s *Store) GetRun(_ context.Context, runID id.PayrollRunID) (*payroll.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.runs[runID.String()]; ok {
		return copyRun(r), nil
	}
	return nil, certpay.ErrRunNotFound
}

func (s *Store) ListRuns(_ context.Context, projectID id.ProjectID) ([]*payroll.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*payroll.Run, 0)
	for _, r := range s.runs {
		if r.ProjectID == projectID {
			result = append(result, copyRun(r))
		}
	}
	return result, nil
}

func (s *Store) UpdateRun(_ context.Context, r *payroll.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[r.ID.String()]; !exists {
		return certpay.ErrRunNotFound
	}
	s.runs[r.ID.String()] = copyRun(r)
	return nil
}

// Report Store implementation
func (s *Store) CreateReport(_ context.Context, rep *report.ComplianceReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[rep.ID.String()]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *rep
	s.reports[rep.ID.String()] = &c
	return nil
}

func (s *Store) GetReport(_ context.Context, reportID id.ReportID) (*report.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rep, ok := s.reports[reportID.String()]; ok {
		c := *rep
		return &c, nil
	}
	return nil, certpay.ErrReportNotFound
}

func (s *Store) ListReports(_ context.Context, runID id.PayrollRunID) ([]*report.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*report.ComplianceReport, 0)
	for _, rep := range s.reports {
		if rep.PayrollRunID == runID {
			c := *rep
			result = append(result, &c)
		}
	}
	return result, nil
}

func (s *Store) UpdateReport(_ context.Context, rep *report.ComplianceReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[rep.ID.String()]; !exists {
		return certpay.ErrReportNotFound
	}
	c := *rep
	s.reports[rep.ID.String()] = &c
	return nil
}

func (s *Store) CreateRejection(_ context.Context, rej *report.Rejection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rej.ReportID.String()
	c := *rej
	s.rejections[key] = append(s.rejections[key], &c)
	return nil
}

func (s *Store) ListRejections(_ context.Context, reportID id.ReportID) ([]*report.Rejection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rejs := s.rejections[reportID.String()]
	result := make([]*report.Rejection, 0, len(rejs))
	for _, rej := range rejs {
		c := *rej
		result = append(result, &c)
	}
	return result, nil
}

// Subscription Store implementation
func (s *Store) CreateSubscription(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sub.OrganizationID.String()
	if _, exists := s.subscriptions[key]; exists {
		return certpay.ErrAlreadyExists
	}
	c := *sub
	s.subscriptions[key] = &c
	return nil
}

func (s *Store) GetSubscription(_ context.Context, orgID id.OrganizationID) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, ok := s.subscriptions[orgID.String()]; ok {
		c := *sub
		return &c, nil
	}
	return nil, certpay.ErrSubscriptionNotFound
}

func (s *Store) UpdateSubscription(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.OrganizationID.String()]; !exists {
		return certpay.ErrSubscriptionNotFound
	}
	c := *sub
	s.subscriptions[sub.OrganizationID.String()] = &c
	return nil
}

// MarkWebhookEvent implements the atomic seen-check for webhook dedup.
// The check and the insert happen under a single write lock.
func (s *Store) MarkWebhookEvent(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.webhookEvents[eventID]; seen {
		return true, nil
	}
	s.webhookEvents[eventID] = time.Now().UTC()
	return false, nil
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
