package mongo

import (
	"time"

	"github.com/xraph/certpay/id"
	"github.com/xraph/certpay/org"
	"github.com/xraph/certpay/payroll"
	"github.com/xraph/certpay/project"
	"github.com/xraph/certpay/report"
	"github.com/xraph/certpay/subscription"
	"github.com/xraph/certpay/types"
)

// ==================== Organization models ====================

type organizationModel struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toOrganizationModel(o *org.Organization) *organizationModel {
	return &organizationModel{
		ID:        o.ID.String(),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func fromOrganizationModel(m *organizationModel) (*org.Organization, error) {
	orgID, err := id.ParseOrganizationID(m.ID)
	if err != nil {
		return nil, err
	}
	return &org.Organization{
		Entity: types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:     orgID,
		Name:   m.Name,
	}, nil
}

type userModel struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toUserModel(u *org.User) *userModel {
	return &userModel{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func fromUserModel(m *userModel) (*org.User, error) {
	userID, err := id.ParseUserID(m.ID)
	if err != nil {
		return nil, err
	}
	return &org.User{
		Entity: types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:     userID,
		Email:  m.Email,
	}, nil
}

type membershipModel struct {
	ID             string    `bson:"_id"` // orgID:userID
	OrganizationID string    `bson:"organization_id"`
	UserID         string    `bson:"user_id"`
	Role           string    `bson:"role"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toMembershipModel(m *org.Membership) *membershipModel {
	return &membershipModel{
		ID:             m.OrganizationID.String() + ":" + m.UserID.String(),
		OrganizationID: m.OrganizationID.String(),
		UserID:         m.UserID.String(),
		Role:           string(m.Role),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromMembershipModel(m *membershipModel) (*org.Membership, error) {
	orgID, err := id.ParseOrganizationID(m.OrganizationID)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(m.UserID)
	if err != nil {
		return nil, err
	}
	return &org.Membership{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		OrganizationID: orgID,
		UserID:         userID,
		Role:           org.Role(m.Role),
	}, nil
}

// ==================== Project models ====================

type projectModel struct {
	ID             string    `bson:"_id"`
	OrganizationID string    `bson:"organization_id"`
	Name           string    `bson:"name"`
	ContractNumber string    `bson:"contract_number,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toProjectModel(p *project.Project) *projectModel {
	return &projectModel{
		ID:             p.ID.String(),
		OrganizationID: p.OrganizationID.String(),
		Name:           p.Name,
		ContractNumber: p.ContractNumber,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromProjectModel(m *projectModel) (*project.Project, error) {
	projectID, err := id.ParseProjectID(m.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := id.ParseOrganizationID(m.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &project.Project{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             projectID,
		OrganizationID: orgID,
		Name:           m.Name,
		ContractNumber: m.ContractNumber,
	}, nil
}

type workerModel struct {
	ID             string    `bson:"_id"`
	ProjectID      string    `bson:"project_id"`
	FullName       string    `bson:"full_name"`
	Classification string    `bson:"classification"`
	FringeRate     float64   `bson:"fringe_rate"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toWorkerModel(w *project.Worker) *workerModel {
	return &workerModel{
		ID:             w.ID.String(),
		ProjectID:      w.ProjectID.String(),
		FullName:       w.FullName,
		Classification: w.Classification,
		FringeRate:     w.FringeRate,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func fromWorkerModel(m *workerModel) (*project.Worker, error) {
	workerID, err := id.ParseWorkerID(m.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := id.ParseProjectID(m.ProjectID)
	if err != nil {
		return nil, err
	}
	return &project.Worker{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             workerID,
		ProjectID:      projectID,
		FullName:       m.FullName,
		Classification: m.Classification,
		FringeRate:     m.FringeRate,
	}, nil
}

type timesheetEntryModel struct {
	ID        string    `bson:"_id"`
	ProjectID string    `bson:"project_id"`
	WorkerID  string    `bson:"worker_id"`
	WorkDate  time.Time `bson:"work_date"`
	Hours     float64   `bson:"hours"`
	WageRate  float64   `bson:"wage_rate"`
	Source    string    `bson:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toTimesheetEntryModel(e *project.TimesheetEntry) *timesheetEntryModel {
	return &timesheetEntryModel{
		ID:        e.ID.String(),
		ProjectID: e.ProjectID.String(),
		WorkerID:  e.WorkerID.String(),
		WorkDate:  e.WorkDate,
		Hours:     e.Hours,
		WageRate:  e.WageRate,
		Source:    e.Source,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromTimesheetEntryModel(m *timesheetEntryModel) (*project.TimesheetEntry, error) {
	entryID, err := id.ParseTimesheetEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := id.ParseProjectID(m.ProjectID)
	if err != nil {
		return nil, err
	}
	workerID, err := id.ParseWorkerID(m.WorkerID)
	if err != nil {
		return nil, err
	}
	return &project.TimesheetEntry{
		Entity:    types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:        entryID,
		ProjectID: projectID,
		WorkerID:  workerID,
		WorkDate:  m.WorkDate.UTC(),
		Hours:     m.Hours,
		WageRate:  m.WageRate,
		Source:    m.Source,
	}, nil
}

// ==================== Payroll models ====================

type workerSummaryModel struct {
	WorkerID   string  `bson:"worker_id"`
	TotalHours float64 `bson:"total_hours"`
	TotalWages float64 `bson:"total_wages"`
}

type runModel struct {
	ID              string               `bson:"_id"`
	ProjectID       string               `bson:"project_id"`
	PeriodStart     time.Time            `bson:"period_start"`
	PeriodEnd       time.Time            `bson:"period_end"`
	Status          string               `bson:"status"`
	CreatedBy       string               `bson:"created_by"`
	EntryCount      int                  `bson:"entry_count"`
	WorkerCount     int                  `bson:"worker_count"`
	GrossWages      float64              `bson:"gross_wages"`
	WorkerSummaries []workerSummaryModel `bson:"worker_summaries"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

func toRunModel(r *payroll.Run) *runModel {
	summaries := make([]workerSummaryModel, len(r.WorkerSummaries))
	for i, ws := range r.WorkerSummaries {
		summaries[i] = workerSummaryModel{
			WorkerID:   ws.WorkerID.String(),
			TotalHours: ws.TotalHours,
			TotalWages: ws.TotalWages,
		}
	}
	return &runModel{
		ID:              r.ID.String(),
		ProjectID:       r.ProjectID.String(),
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		Status:          string(r.Status),
		CreatedBy:       r.CreatedBy.String(),
		EntryCount:      r.Totals.EntryCount,
		WorkerCount:     r.Totals.WorkerCount,
		GrossWages:      r.Totals.GrossWages,
		WorkerSummaries: summaries,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func fromRunModel(m *runModel) (*payroll.Run, error) {
	runID, err := id.ParsePayrollRunID(m.ID)
	if err != nil {
		return nil, err
	}
	projectID, err := id.ParseProjectID(m.ProjectID)
	if err != nil {
		return nil, err
	}
	createdBy, err := id.ParseUserID(m.CreatedBy)
	if err != nil {
		return nil, err
	}
	summaries := make([]payroll.WorkerSummary, len(m.WorkerSummaries))
	for i, ws := range m.WorkerSummaries {
		workerID, err := id.ParseWorkerID(ws.WorkerID)
		if err != nil {
			return nil, err
		}
		summaries[i] = payroll.WorkerSummary{
			WorkerID:   workerID,
			TotalHours: ws.TotalHours,
			TotalWages: ws.TotalWages,
		}
	}
	return &payroll.Run{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          runID,
		ProjectID:   projectID,
		PeriodStart: m.PeriodStart.UTC(),
		PeriodEnd:   m.PeriodEnd.UTC(),
		Status:      payroll.Status(m.Status),
		CreatedBy:   createdBy,
		Totals: payroll.Totals{
			EntryCount:  m.EntryCount,
			WorkerCount: m.WorkerCount,
			GrossWages:  m.GrossWages,
		},
		WorkerSummaries: summaries,
	}, nil
}

// ==================== Report models ====================

type reportModel struct {
	ID           string     `bson:"_id"`
	PayrollRunID string     `bson:"payroll_run_id"`
	Revision     int        `bson:"revision"`
	Status       string     `bson:"status"`
	SubmittedAt  *time.Time `bson:"submitted_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func toReportModel(rep *report.ComplianceReport) *reportModel {
	return &reportModel{
		ID:           rep.ID.String(),
		PayrollRunID: rep.PayrollRunID.String(),
		Revision:     rep.Revision,
		Status:       string(rep.Status),
		SubmittedAt:  rep.SubmittedAt,
		CreatedAt:    rep.CreatedAt,
		UpdatedAt:    rep.UpdatedAt,
	}
}

func fromReportModel(m *reportModel) (*report.ComplianceReport, error) {
	reportID, err := id.ParseReportID(m.ID)
	if err != nil {
		return nil, err
	}
	runID, err := id.ParsePayrollRunID(m.PayrollRunID)
	if err != nil {
		return nil, err
	}
	return &report.ComplianceReport{
		Entity:       types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:           reportID,
		PayrollRunID: runID,
		Revision:     m.Revision,
		Status:       report.Status(m.Status),
		SubmittedAt:  m.SubmittedAt,
	}, nil
}

type rejectionModel struct {
	ID         string    `bson:"_id"`
	ReportID   string    `bson:"report_id"`
	ReasonCode string    `bson:"reason_code"`
	Notes      string    `bson:"notes,omitempty"`
	CreatedBy  string    `bson:"created_by"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toRejectionModel(rej *report.Rejection) *rejectionModel {
	return &rejectionModel{
		ID:         rej.ID.String(),
		ReportID:   rej.ReportID.String(),
		ReasonCode: string(rej.ReasonCode),
		Notes:      rej.Notes,
		CreatedBy:  rej.CreatedBy.String(),
		CreatedAt:  rej.CreatedAt,
		UpdatedAt:  rej.UpdatedAt,
	}
}

func fromRejectionModel(m *rejectionModel) (*report.Rejection, error) {
	rejID, err := id.ParseRejectionID(m.ID)
	if err != nil {
		return nil, err
	}
	reportID, err := id.ParseReportID(m.ReportID)
	if err != nil {
		return nil, err
	}
	createdBy, err := id.ParseUserID(m.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &report.Rejection{
		Entity:     types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:         rejID,
		ReportID:   reportID,
		ReasonCode: report.ReasonCode(m.ReasonCode),
		Notes:      m.Notes,
		CreatedBy:  createdBy,
	}, nil
}

// ==================== Subscription models ====================

type subscriptionModel struct {
	ID             string    `bson:"_id"`
	OrganizationID string    `bson:"organization_id"`
	Status         string    `bson:"status"`
	ProviderRef    string    `bson:"provider_ref,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toSubscriptionModel(sub *subscription.Subscription) *subscriptionModel {
	return &subscriptionModel{
		ID:             sub.ID.String(),
		OrganizationID: sub.OrganizationID.String(),
		Status:         string(sub.Status),
		ProviderRef:    sub.ProviderRef,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
}

func fromSubscriptionModel(m *subscriptionModel) (*subscription.Subscription, error) {
	subID, err := id.ParseSubscriptionID(m.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := id.ParseOrganizationID(m.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &subscription.Subscription{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             subID,
		OrganizationID: orgID,
		Status:         subscription.Status(m.Status),
		ProviderRef:    m.ProviderRef,
	}, nil
}

// webhookEventModel records a processed webhook delivery. The event ID is the
// document key, so a second insert of the same event fails with a duplicate
// key error.
type webhookEventModel struct {
	ID     string    `bson:"_id"`
	SeenAt time.Time `bson:"seen_at"`
}
