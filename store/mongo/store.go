// Package mongo implements store.Store on MongoDB using the official driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	certpay "github.com/xraph/certpay"
	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/report"
	certpaystore "github.com/xraph/certpay/store"
	"github.com/xraph/certpay/subscription"
)

// Collection name constants.
const (
	colOrganizations = "certpay_organizations"
	colUsers         = "certpay_users"
	colMemberships   = "certpay_memberships"
	colProjects      = "certpay_projects"
	colWorkers       = "certpay_workers"
	colTimesheets    = "certpay_timesheet_entries"
	colRuns          = "certpay_payroll_runs"
	colReports       = "certpay_compliance_reports"
	colRejections    = "certpay_report_rejections"
	colSubscriptions = "certpay_subscriptions"
	colWebhookEvents = "certpay_webhook_events"
)

// compile-time interface check
var _ certpaystore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a new MongoDB store using the given client and database name.
func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// Connect dials MongoDB and returns a store bound to the given database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("certpay/mongo: ping: %w", err)
	}
	return New(client, database), nil
}

// Database returns the underlying mongo database for direct access.
func (s *Store) Database() *mongo.Database { return s.db }

// Migrate creates indexes for all collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.db.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("certpay/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// ==================== Organization Store ====================

func (s *Store) CreateOrganization(ctx context.Context, o *org.Organization) error {
	_, err := s.db.Collection(colOrganizations).InsertOne(ctx, toOrganizationModel(o))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create organization: %w", err)
	}
	return nil
}

func (s *Store) GetOrganization(ctx context.Context, orgID id.OrganizationID) (*org.Organization, error) {
	var m organizationModel
	err := s.db.Collection(colOrganizations).
		FindOne(ctx, bson.M{"_id": orgID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get organization: %w", err)
	}
	return fromOrganizationModel(&m)
}

func (s *Store) CreateUser(ctx context.Context, u *org.User) error {
	_, err := s.db.Collection(colUsers).InsertOne(ctx, toUserModel(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*org.User, error) {
	var m userModel
	err := s.db.Collection(colUsers).
		FindOne(ctx, bson.M{"_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrUserNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get user: %w", err)
	}
	return fromUserModel(&m)
}

func (s *Store) CreateMembership(ctx context.Context, m *org.Membership) error {
	_, err := s.db.Collection(colMemberships).InsertOne(ctx, toMembershipModel(m))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create membership: %w", err)
	}
	return nil
}

func (s *Store) GetMembership(ctx context.Context, orgID id.OrganizationID, userID id.UserID) (*org.Membership, error) {
	var m membershipModel
	err := s.db.Collection(colMemberships).
		FindOne(ctx, bson.M{"organization_id": orgID.String(), "user_id": userID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get membership: %w", err)
	}
	return fromMembershipModel(&m)
}

// ==================== Project Store ====================

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	_, err := s.db.Collection(colProjects).InsertOne(ctx, toProjectModel(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create project: %w", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	var m projectModel
	err := s.db.Collection(colProjects).
		FindOne(ctx, bson.M{"_id": projectID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrProjectNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get project: %w", err)
	}
	return fromProjectModel(&m)
}

func (s *Store) ListProjects(ctx context.Context, orgID id.OrganizationID) ([]*project.Project, error) {
	cur, err := s.db.Collection(colProjects).Find(ctx,
		bson.M{"organization_id": orgID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list projects: %w", err)
	}
	var models []projectModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list projects: %w", err)
	}

	result := make([]*project.Project, len(models))
	for i := range models {
		p, err := fromProjectModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) CreateWorker(ctx context.Context, w *project.Worker) error {
	_, err := s.db.Collection(colWorkers).InsertOne(ctx, toWorkerModel(w))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create worker: %w", err)
	}
	return nil
}

func (s *Store) GetWorker(ctx context.Context, workerID id.WorkerID) (*project.Worker, error) {
	var m workerModel
	err := s.db.Collection(colWorkers).
		FindOne(ctx, bson.M{"_id": workerID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get worker: %w", err)
	}
	return fromWorkerModel(&m)
}

func (s *Store) ListWorkers(ctx context.Context, projectID id.ProjectID) ([]*project.Worker, error) {
	cur, err := s.db.Collection(colWorkers).Find(ctx,
		bson.M{"project_id": projectID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list workers: %w", err)
	}
	var models []workerModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list workers: %w", err)
	}

	result := make([]*project.Worker, len(models))
	for i := range models {
		w, err := fromWorkerModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = w
	}
	return result, nil
}

func (s *Store) CreateTimesheetEntry(ctx context.Context, e *project.TimesheetEntry) error {
	_, err := s.db.Collection(colTimesheets).InsertOne(ctx, toTimesheetEntryModel(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create timesheet entry: %w", err)
	}
	return nil
}

func (s *Store) ListTimesheetEntries(ctx context.Context, projectID id.ProjectID, periodStart, periodEnd time.Time) ([]*project.TimesheetEntry, error) {
	// Period bounds are inclusive on both ends.
	filter := bson.M{
		"project_id": projectID.String(),
		"work_date":  bson.M{"$gte": periodStart, "$lte": periodEnd},
	}
	cur, err := s.db.Collection(colTimesheets).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "work_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list timesheet entries: %w", err)
	}
	var models []timesheetEntryModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list timesheet entries: %w", err)
	}

	result := make([]*project.TimesheetEntry, len(models))
	for i := range models {
		e, err := fromTimesheetEntryModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Payroll Store ====================

func (s *Store) CreateRun(ctx context.Context, r *payroll.Run) error {
	_, err := s.db.Collection(colRuns).InsertOne(ctx, toRunModel(r))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create payroll run: %w", err)
	}
	return nil
}

func (s *Store) GetRun(ctx context.Context, runID id.PayrollRunID) (*payroll.Run, error) {
	var m runModel
	err := s.db.Collection(colRuns).
		FindOne(ctx, bson.M{"_id": runID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrRunNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get payroll run: %w", err)
	}
	return fromRunModel(&m)
}

func (s *Store) ListRuns(ctx context.Context, projectID id.ProjectID) ([]*payroll.Run, error) {
	cur, err := s.db.Collection(colRuns).Find(ctx,
		bson.M{"project_id": projectID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list payroll runs: %w", err)
	}
	var models []runModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list payroll runs: %w", err)
	}

	result := make([]*payroll.Run, len(models))
	for i := range models {
		r, err := fromRunModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

func (s *Store) UpdateRun(ctx context.Context, r *payroll.Run) error {
	m := toRunModel(r)
	m.UpdatedAt = now()

	res, err := s.db.Collection(colRuns).ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return fmt.Errorf("certpay/mongo: update payroll run: %w", err)
	}
	if res.MatchedCount == 0 {
		return certpay.ErrRunNotFound
	}
	return nil
}

// ==================== Report Store ====================

func (s *Store) CreateReport(ctx context.Context, rep *report.ComplianceReport) error {
	_, err := s.db.Collection(colReports).InsertOne(ctx, toReportModel(rep))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create report: %w", err)
	}
	return nil
}

func (s *Store) GetReport(ctx context.Context, reportID id.ReportID) (*report.ComplianceReport, error) {
	var m reportModel
	err := s.db.Collection(colReports).
		FindOne(ctx, bson.M{"_id": reportID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrReportNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get report: %w", err)
	}
	return fromReportModel(&m)
}

func (s *Store) ListReports(ctx context.Context, runID id.PayrollRunID) ([]*report.ComplianceReport, error) {
	cur, err := s.db.Collection(colReports).Find(ctx,
		bson.M{"payroll_run_id": runID.String()},
		options.Find().SetSort(bson.D{{Key: "revision", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list reports: %w", err)
	}
	var models []reportModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list reports: %w", err)
	}

	result := make([]*report.ComplianceReport, len(models))
	for i := range models {
		rep, err := fromReportModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = rep
	}
	return result, nil
}

func (s *Store) UpdateReport(ctx context.Context, rep *report.ComplianceReport) error {
	m := toReportModel(rep)
	m.UpdatedAt = now()

	res, err := s.db.Collection(colReports).ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return fmt.Errorf("certpay/mongo: update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return certpay.ErrReportNotFound
	}
	return nil
}

func (s *Store) CreateRejection(ctx context.Context, rej *report.Rejection) error {
	_, err := s.db.Collection(colRejections).InsertOne(ctx, toRejectionModel(rej))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create rejection: %w", err)
	}
	return nil
}

func (s *Store) ListRejections(ctx context.Context, reportID id.ReportID) ([]*report.Rejection, error) {
	cur, err := s.db.Collection(colRejections).Find(ctx,
		bson.M{"report_id": reportID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("certpay/mongo: list rejections: %w", err)
	}
	var models []rejectionModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("certpay/mongo: list rejections: %w", err)
	}

	result := make([]*report.Rejection, len(models))
	for i := range models {
		rej, err := fromRejectionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = rej
	}
	return result, nil
}

// ==================== Subscription Store ====================

func (s *Store) CreateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	_, err := s.db.Collection(colSubscriptions).InsertOne(ctx, toSubscriptionModel(sub))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return certpay.ErrAlreadyExists
		}
		return fmt.Errorf("certpay/mongo: create subscription: %w", err)
	}
	return nil
}

func (s *Store) GetSubscription(ctx context.Context, orgID id.OrganizationID) (*subscription.Subscription, error) {
	var m subscriptionModel
	err := s.db.Collection(colSubscriptions).
		FindOne(ctx, bson.M{"organization_id": orgID.String()}).
		Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, certpay.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("certpay/mongo: get subscription: %w", err)
	}
	return fromSubscriptionModel(&m)
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	m := toSubscriptionModel(sub)
	m.UpdatedAt = now()

	res, err := s.db.Collection(colSubscriptions).ReplaceOne(ctx,
		bson.M{"organization_id": m.OrganizationID}, m)
	if err != nil {
		return fmt.Errorf("certpay/mongo: update subscription: %w", err)
	}
	if res.MatchedCount == 0 {
		return certpay.ErrSubscriptionNotFound
	}
	return nil
}

// MarkWebhookEvent inserts the event ID as a document key. A duplicate key
// error means the event was already processed, which makes the check-and-set
// atomic at the database level.
func (s *Store) MarkWebhookEvent(ctx context.Context, eventID string) (bool, error) {
	_, err := s.db.Collection(colWebhookEvents).InsertOne(ctx, &webhookEventModel{
		ID:     eventID,
		SeenAt: now(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, fmt.Errorf("certpay/mongo: mark webhook event: %w", err)
	}
	return false, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colMemberships: {
			{
				Keys:    bson.D{{Key: "organization_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colProjects: {
			{Keys: bson.D{{Key: "organization_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colWorkers: {
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colTimesheets: {
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "work_date", Value: 1}}},
			{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "work_date", Value: 1}}},
		},
		colRuns: {
			{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colReports: {
			{
				Keys:    bson.D{{Key: "payroll_run_id", Value: 1}, {Key: "revision", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colRejections: {
			{Keys: bson.D{{Key: "report_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colSubscriptions: {
			{
				Keys:    bson.D{{Key: "organization_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}
