// Package demo carries the demo dataset and seeds it through the repository
// interfaces, so the same data backs the memory driver, the seed command and
// the test suite.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/tempohq/tempo/internal/domain"
)

// SystemActor is the actor recorded for task creation by the ingestion path.
var SystemActor = domain.Actor{ID: "user_system", Name: "System"}

// Orgs returns the demo organizations.
func Orgs(now time.Time) []domain.Organization {
	return []domain.Organization{
		{ID: "org_1", Name: "Acme Inc.", Slug: "acme", CreatedAt: now.AddDate(-1, 0, 0)},
		{ID: "org_2", Name: "Stark Industries", Slug: "stark", CreatedAt: now.AddDate(-1, 0, 7)},
		{ID: "org_3", Name: "Wayne Enterprises", Slug: "wayne", CreatedAt: now.AddDate(-1, 0, 14)},
	}
}

// Users returns the demo user directory with memberships in their original
// order; the first membership seeds the active organization on login.
func Users(now time.Time) []domain.User {
	return []domain.User{
		{
			ID:        "user_1",
			Name:      "Alice Johnson",
			Email:     "alice@tempo.app",
			AvatarURL: "https://i.pravatar.cc/150?u=user_1",
			Memberships: []domain.OrgMembership{
				{OrgID: "org_1", Role: domain.RoleOwner},
				{OrgID: "org_2", Role: domain.RoleViewer},
			},
			CreatedAt: now.AddDate(-1, 0, 0),
		},
		{
			ID:        "user_2",
			Name:      "Bob Williams",
			Email:     "bob@tempo.app",
			AvatarURL: "https://i.pravatar.cc/150?u=user_2",
			Memberships: []domain.OrgMembership{
				{OrgID: "org_1", Role: domain.RoleApprover},
				{OrgID: "org_2", Role: domain.RoleAdmin},
				{OrgID: "org_3", Role: domain.RoleViewer},
			},
			CreatedAt: now.AddDate(-1, 0, 1),
		},
		{
			ID:        "user_3",
			Name:      "Charlie Brown",
			Email:     "charlie@tempo.app",
			AvatarURL: "https://i.pravatar.cc/150?u=user_3",
			Memberships: []domain.OrgMembership{
				{OrgID: "org_1", Role: domain.RoleViewer},
				{OrgID: "org_3", Role: domain.RoleApprover},
			},
			CreatedAt: now.AddDate(-1, 0, 2),
		},
	}
}

// Tasks returns the demo approval tasks with timestamps relative to now.
func Tasks(now time.Time) []domain.Task {
	yesterday := now.Add(-24 * time.Hour)
	twoDaysAgo := now.Add(-2 * 24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []domain.Task{
		{
			ID:         "task_1",
			OrgID:      "org_1",
			WorkflowID: "wf-expense-report-001",
			Title:      "Approve expense report #ER-12345 for $5,430.12",
			Status:     domain.TaskStatusPending,
			Payload: map[string]any{
				"reportId":  "ER-12345",
				"amount":    5430.12,
				"currency":  "USD",
				"submitter": "David Lee",
				"items": []any{
					map[string]any{"description": "Flight to NYC", "amount": 850.00},
					map[string]any{"description": "Hotel (4 nights)", "amount": 1200.50},
					map[string]any{"description": "Client Dinner", "amount": 350.62},
					map[string]any{"description": "Software Subscription", "amount": 3029.00},
				},
			},
			CreatedAt: yesterday,
			UpdatedAt: yesterday,
			History: []domain.TaskHistoryItem{
				{ID: "hist_1_1", Action: domain.HistoryActionCreated, Actor: SystemActor, Timestamp: yesterday},
			},
		},
		{
			ID:         "task_2",
			OrgID:      "org_1",
			WorkflowID: "wf-new-hire-onboarding-002",
			Title:      "Onboard new hire: Sarah Connor",
			Status:     domain.TaskStatusApproved,
			Payload: map[string]any{
				"candidateId": "CAND-9876",
				"name":        "Sarah Connor",
				"position":    "Senior Engineer",
				"startDate":   "2024-08-01",
				"manager":     "Bob Williams",
			},
			CreatedAt: twoDaysAgo,
			UpdatedAt: yesterday,
			History: []domain.TaskHistoryItem{
				{ID: "hist_2_1", Action: domain.HistoryActionCreated, Actor: SystemActor, Timestamp: twoDaysAgo},
				{ID: "hist_2_2", Action: domain.HistoryActionApproved, Actor: domain.Actor{ID: "user_2", Name: "Bob Williams"}, Timestamp: yesterday, Comment: "Looks good, welcome aboard!"},
			},
		},
		{
			ID:         "task_3",
			OrgID:      "org_2",
			WorkflowID: "wf-po-approval-003",
			Title:      "Purchase Order #PO-ACME-555 for new servers",
			Status:     domain.TaskStatusRejected,
			Payload: map[string]any{
				"poNumber": "PO-ACME-555",
				"vendor":   "Dell",
				"amount":   85000.00,
				"currency": "USD",
				"items": []any{
					map[string]any{"sku": "POWEREDGE-R750", "quantity": 10},
				},
			},
			CreatedAt: lastWeek,
			UpdatedAt: twoDaysAgo,
			History: []domain.TaskHistoryItem{
				{ID: "hist_3_1", Action: domain.HistoryActionCreated, Actor: SystemActor, Timestamp: lastWeek},
				{ID: "hist_3_2", Action: domain.HistoryActionRejected, Actor: domain.Actor{ID: "user_2", Name: "Bob Williams"}, Timestamp: twoDaysAgo, Comment: "Budget exceeded. Please re-submit with a revised quote."},
			},
		},
		{
			ID:         "task_4",
			OrgID:      "org_1",
			WorkflowID: "wf-access-request-004",
			Title:      "Grant database access for `dev-team` to `customer_pii`",
			Status:     domain.TaskStatusPending,
			Payload: map[string]any{
				"team":          "dev-team",
				"resource":      "customer_pii",
				"requestedBy":   "Charlie Brown",
				"justification": "Need access for new feature development for Q3 roadmap.",
			},
			CreatedAt: now,
			UpdatedAt: now,
			History: []domain.TaskHistoryItem{
				{ID: "hist_4_1", Action: domain.HistoryActionCreated, Actor: SystemActor, Timestamp: now},
			},
		},
		{
			ID:         "task_5",
			OrgID:      "org_3",
			WorkflowID: "wf-content-publish-005",
			Title:      `Publish blog post: "The Future of AI"`,
			Status:     domain.TaskStatusPending,
			Payload: map[string]any{
				"title":       "The Future of AI",
				"author":      "Jane Doe",
				"publishDate": "2024-07-28",
				"platform":    "Company Blog",
			},
			CreatedAt: yesterday,
			UpdatedAt: yesterday,
			History: []domain.TaskHistoryItem{
				{ID: "hist_5_1", Action: domain.HistoryActionCreated, Actor: SystemActor, Timestamp: yesterday},
			},
		},
	}
}

// AuditLogs returns the demo audit trail.
func AuditLogs(now time.Time) []domain.AuditLog {
	yesterday := now.Add(-24 * time.Hour)
	twoDaysAgo := now.Add(-2 * 24 * time.Hour)

	return []domain.AuditLog{
		{
			ID:        "audit_1",
			OrgID:     "org_1",
			Actor:     domain.Actor{ID: "user_1", Name: "Alice Johnson"},
			Action:    domain.AuditActionUserLogin,
			Target:    domain.Target{Type: "user", ID: "user_1"},
			Meta:      map[string]any{"ip": "192.168.1.1", "userAgent": "Chrome/125.0.0.0"},
			CreatedAt: now,
		},
		{
			ID:        "audit_2",
			OrgID:     "org_2",
			Actor:     domain.Actor{ID: "user_2", Name: "Bob Williams"},
			Action:    domain.AuditActionTaskRejected,
			Target:    domain.Target{Type: "task", ID: "task_3"},
			Meta:      map[string]any{"comment": "Budget exceeded. Please re-submit with a revised quote."},
			CreatedAt: twoDaysAgo,
		},
		{
			ID:        "audit_3",
			OrgID:     "org_1",
			Actor:     domain.Actor{ID: "user_2", Name: "Bob Williams"},
			Action:    domain.AuditActionTaskApproved,
			Target:    domain.Target{Type: "task", ID: "task_2"},
			Meta:      map[string]any{"comment": "Looks good, welcome aboard!"},
			CreatedAt: yesterday,
		},
		{
			ID:        "audit_4",
			OrgID:     "org_1",
			Actor:     domain.Actor{ID: "user_1", Name: "Alice Johnson"},
			Action:    "settings.updated",
			Target:    domain.Target{Type: "org", ID: "org_1"},
			Meta:      map[string]any{"changes": map[string]any{"sso_provider": "okta"}},
			CreatedAt: yesterday,
		},
	}
}

// Connections returns the demo workflow cluster connections.
func Connections(now time.Time) []domain.Connection {
	return []domain.Connection{
		{ID: "conn_1", OrgID: "org_1", DisplayName: "Acme Production", Target: "acme-prod.tmprl.cloud:7233", ClientType: domain.ClientTypeCloud, CreatedAt: now.AddDate(0, -3, 0)},
		{ID: "conn_2", OrgID: "org_1", DisplayName: "Acme Staging", Target: "acme-staging.tmprl.cloud:7233", ClientType: domain.ClientTypeCloud, CreatedAt: now.AddDate(0, -2, 0)},
		{ID: "conn_3", OrgID: "org_2", DisplayName: "Stark Industries Mainframe", Target: "10.0.1.23:7233", ClientType: domain.ClientTypeSelfHosted, CreatedAt: now.AddDate(0, -1, 0)},
	}
}

// Repositories groups the repository interfaces Seed writes through.
type Repositories struct {
	Users       domain.UserRepository
	Orgs        domain.OrganizationRepository
	Tasks       domain.TaskRepository
	Audit       domain.AuditRepository
	Connections domain.ConnectionRepository
}

// Seed loads the full demo dataset through the given repositories.
func Seed(ctx context.Context, repos Repositories, now time.Time) error {
	for _, org := range Orgs(now) {
		o := org
		if err := repos.Orgs.Create(ctx, &o); err != nil {
			return fmt.Errorf("failed to seed organization %s: %w", org.ID, err)
		}
	}
	for _, user := range Users(now) {
		u := user
		if err := repos.Users.Create(ctx, &u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.ID, err)
		}
	}
	for _, task := range Tasks(now) {
		t := task
		if err := repos.Tasks.Create(ctx, &t); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", task.ID, err)
		}
	}
	for _, entry := range AuditLogs(now) {
		e := entry
		if err := repos.Audit.Append(ctx, &e); err != nil {
			return fmt.Errorf("failed to seed audit entry %s: %w", entry.ID, err)
		}
	}
	for _, conn := range Connections(now) {
		c := conn
		if err := repos.Connections.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed connection %s: %w", conn.ID, err)
		}
	}
	return nil
}
