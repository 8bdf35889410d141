package installer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/installer"
	"github.com/vinculocrm/vinculo/internal/platform/supabase"
	"github.com/vinculocrm/vinculo/internal/platform/vercel"
)

type fakeHosting struct {
	getProjectErr error
	upsertEnvErr  error
	envs          []vercel.EnvVar
	deployment    *vercel.Deployment
	deploymentErr error
	redeployErr   error
	redeployed    bool
}

func (f *fakeHosting) GetProject(ctx context.Context, projectID string) (*vercel.Project, error) {
	if f.getProjectErr != nil {
		return nil, f.getProjectErr
	}
	return &vercel.Project{ID: projectID, Name: "crm"}, nil
}

func (f *fakeHosting) UpsertEnv(ctx context.Context, projectID string, envs []vercel.EnvVar) error {
	f.envs = envs
	return f.upsertEnvErr
}

func (f *fakeHosting) LatestDeployment(ctx context.Context, projectID string) (*vercel.Deployment, error) {
	return f.deployment, f.deploymentErr
}

func (f *fakeHosting) Redeploy(ctx context.Context, deployment *vercel.Deployment) error {
	f.redeployed = true
	return f.redeployErr
}

type fakePlatform struct {
	creds       *supabase.Credentials
	warnings    []string
	resolveErr  error
	functions   []supabase.EdgeFunction
	functionErr error
}

func (f *fakePlatform) ResolveCredentials(ctx context.Context, ref string) (*supabase.Credentials, []string, error) {
	return f.creds, f.warnings, f.resolveErr
}

func (f *fakePlatform) ListEdgeFunctions(ctx context.Context, ref string) ([]supabase.EdgeFunction, error) {
	return f.functions, f.functionErr
}

func validInput() installer.Input {
	return installer.Input{
		SupabaseProjectRef:  "abcdefghabcdefghabcd",
		SupabaseAccessToken: "sbp_token",
		DatabasePassword:    "db-pass",
		VercelToken:         "vc_token",
		VercelProjectID:     "prj_123",
		DeployEdgeFunctions: true,
		AdminEmail:          "Admin@Example.com",
		AdminPassword:       "s3cure-pass",
		AdminName:           "Admin",
		CompanyName:         "Acme Ltda",
	}
}

func healthyCreds() *supabase.Credentials {
	return &supabase.Credentials{
		ProjectURL:     "https://abc.supabase.co",
		AnonKey:        "anon",
		ServiceRoleKey: "service",
		DBHost:         "db.abc.supabase.co",
	}
}

func newOrchestrator(hosting *fakeHosting, platform *fakePlatform, opts ...installer.Option) *installer.Orchestrator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []installer.Option{
		installer.WithSchemaApplier(func(ctx context.Context, connString string) error { return nil }),
		installer.WithAdminCreator(func(ctx context.Context, connString string, input installer.Input, hash string) (string, error) {
			return "", nil
		}),
	}
	return installer.NewOrchestrator(
		func(token, teamID string) installer.HostingAPI { return hosting },
		func(accessToken string) installer.DatabasePlatformAPI { return platform },
		auth.NewPasswordHasher(),
		logger,
		append(base, opts...)...,
	)
}

func stepByID(t *testing.T, report *installer.Report, id string) installer.StepResult {
	t.Helper()
	for _, step := range report.Steps {
		if step.ID == id {
			return step
		}
	}
	t.Fatalf("step %s not found in report", id)
	return installer.StepResult{}
}

func TestInstallerRunHappyPath(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{
		creds: healthyCreds(),
		functions: []supabase.EdgeFunction{
			{Slug: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Status: "ACTIVE"},
		},
	}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.True(t, report.OK)
	assert.Len(t, report.Steps, 7)
	for _, step := range report.Steps {
		assert.Equal(t, installer.StatusOK, step.Status, "step %s", step.ID)
	}
	assert.True(t, hosting.redeployed)

	// env vars carry the resolved credentials
	keys := make(map[string]string)
	for _, env := range hosting.envs {
		keys[env.Key] = env.Value
	}
	assert.Equal(t, "https://abc.supabase.co", keys["SUPABASE_URL"])
	assert.Contains(t, keys["DATABASE_URL"], "db.abc.supabase.co")

	// every checked function reports an outcome
	assert.Equal(t, []installer.FunctionResult{
		{Slug: "send-email", OK: true},
		{Slug: "whatsapp-webhook", OK: true},
	}, report.Functions)
}

func TestInstallerRunManualCredentials(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{}

	input := validInput()
	input.SupabaseAccessToken = ""
	input.SupabaseProjectRef = ""
	input.DatabasePassword = ""
	input.DeployEdgeFunctions = false
	input.SupabaseURL = "https://abc.supabase.co/"
	input.SupabaseAnonKey = "anon-pasted"
	input.SupabaseServiceRoleKey = "service-pasted"
	input.DatabaseURL = "postgresql://postgres:pw@db.abc.supabase.co:5432/postgres"

	report := newOrchestrator(hosting, platform).Run(context.Background(), input)

	assert.True(t, report.OK)
	resolve := stepByID(t, report, "supabase_resolve")
	assert.Equal(t, installer.StatusOK, resolve.Status)

	keys := make(map[string]string)
	for _, env := range hosting.envs {
		keys[env.Key] = env.Value
	}
	assert.Equal(t, "https://abc.supabase.co", keys["SUPABASE_URL"])
	assert.Equal(t, "anon-pasted", keys["SUPABASE_ANON_KEY"])
	assert.Equal(t, "postgresql://postgres:pw@db.abc.supabase.co:5432/postgres", keys["DATABASE_URL"])
}

func TestInstallerRunManualCredentialsMissingKeysWarn(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{}

	input := validInput()
	input.SupabaseAccessToken = ""
	input.SupabaseProjectRef = ""
	input.DatabasePassword = ""
	input.DeployEdgeFunctions = false
	input.SupabaseURL = "https://abc.supabase.co"
	input.DatabaseURL = "postgresql://postgres:pw@db.abc.supabase.co:5432/postgres"

	report := newOrchestrator(hosting, platform).Run(context.Background(), input)

	assert.True(t, report.OK)
	resolve := stepByID(t, report, "supabase_resolve")
	assert.Equal(t, installer.StatusWarning, resolve.Status)
	assert.Contains(t, resolve.Message, "anon key not provided")
	assert.Contains(t, resolve.Message, "service_role key not provided")
}

func TestInstallerRunRequiresTokenOrManualCredentials(t *testing.T) {
	hosting := &fakeHosting{}
	platform := &fakePlatform{creds: healthyCreds()}

	input := validInput()
	input.SupabaseAccessToken = ""

	report := newOrchestrator(hosting, platform).Run(context.Background(), input)

	assert.False(t, report.OK)
	assert.Len(t, report.Steps, 1)
	assert.Equal(t, "validate_input", report.Steps[0].ID)
	assert.Equal(t, installer.StatusError, report.Steps[0].Status)
}

func TestInstallerRunForwardsTeamAndTargets(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{creds: healthyCreds()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var gotToken, gotTeamID string
	orch := installer.NewOrchestrator(
		func(token, teamID string) installer.HostingAPI {
			gotToken = token
			gotTeamID = teamID
			return hosting
		},
		func(accessToken string) installer.DatabasePlatformAPI { return platform },
		auth.NewPasswordHasher(),
		logger,
		installer.WithSchemaApplier(func(ctx context.Context, connString string) error { return nil }),
		installer.WithAdminCreator(func(ctx context.Context, connString string, input installer.Input, hash string) (string, error) {
			return "", nil
		}),
	)

	input := validInput()
	input.DeployEdgeFunctions = false
	input.VercelTeamID = "team_42"
	input.Targets = []string{"production"}

	report := orch.Run(context.Background(), input)

	assert.True(t, report.OK)
	assert.Equal(t, "vc_token", gotToken)
	assert.Equal(t, "team_42", gotTeamID)
	for _, env := range hosting.envs {
		assert.Equal(t, []string{"production"}, env.Target, "env %s", env.Key)
	}
}

func TestInstallerRunSkipsEdgeFunctionsUnlessRequested(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{creds: healthyCreds()}

	input := validInput()
	input.DeployEdgeFunctions = false

	report := newOrchestrator(hosting, platform).Run(context.Background(), input)

	assert.True(t, report.OK)
	assert.Len(t, report.Steps, 6)
	for _, step := range report.Steps {
		assert.NotEqual(t, "edge_functions", step.ID)
	}
	assert.Empty(t, report.Functions)
}

func TestInstallerRunHaltsOnInvalidInput(t *testing.T) {
	hosting := &fakeHosting{}
	platform := &fakePlatform{creds: healthyCreds()}

	input := validInput()
	input.AdminEmail = "not-an-email"

	report := newOrchestrator(hosting, platform).Run(context.Background(), input)

	assert.False(t, report.OK)
	assert.Len(t, report.Steps, 1)
	assert.Equal(t, "validate_input", report.Steps[0].ID)
	assert.Equal(t, installer.StatusError, report.Steps[0].Status)
}

func TestInstallerRunHaltsOnResolveFailure(t *testing.T) {
	hosting := &fakeHosting{}
	platform := &fakePlatform{resolveErr: errors.New("management api unreachable")}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.False(t, report.OK)
	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, "supabase_resolve", last.ID)
	assert.Equal(t, installer.StatusError, last.Status)
	// nothing after the failed step ran
	assert.Len(t, report.Steps, 2)
}

func TestInstallerRunResolveWarningsDoNotHalt(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{
		creds:    healthyCreds(),
		warnings: []string{"anon key not found"},
		functions: []supabase.EdgeFunction{
			{Slug: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Status: "ACTIVE"},
		},
	}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.True(t, report.OK)
	resolve := stepByID(t, report, "supabase_resolve")
	assert.Equal(t, installer.StatusWarning, resolve.Status)
	assert.Contains(t, resolve.Message, "anon key not found")
	assert.Len(t, report.Steps, 7)
}

func TestInstallerRunRedeployFailureDowngradesToWarning(t *testing.T) {
	hosting := &fakeHosting{
		deployment:  &vercel.Deployment{UID: "dpl_1", Name: "crm"},
		redeployErr: errors.New("deployment quota exceeded"),
	}
	platform := &fakePlatform{
		creds: healthyCreds(),
		functions: []supabase.EdgeFunction{
			{Slug: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Status: "ACTIVE"},
		},
	}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.True(t, report.OK, "a failed redeploy must not fail the install")
	redeploy := stepByID(t, report, "vercel_redeploy")
	assert.Equal(t, installer.StatusWarning, redeploy.Status)
}

func TestInstallerRunMissingEdgeFunctionWarns(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{
		creds:     healthyCreds(),
		functions: []supabase.EdgeFunction{{Slug: "send-email", Status: "ACTIVE"}},
	}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.True(t, report.OK)
	functions := stepByID(t, report, "edge_functions")
	assert.Equal(t, installer.StatusWarning, functions.Status)
	assert.Contains(t, functions.Message, "whatsapp-webhook: missing")
	assert.Contains(t, functions.Message, "send-email: ok")
	assert.Equal(t, []installer.FunctionResult{
		{Slug: "send-email", OK: true},
		{Slug: "whatsapp-webhook", Error: "missing"},
	}, report.Functions)
}

func TestInstallerRunHaltsOnEnvWriteFailure(t *testing.T) {
	hosting := &fakeHosting{
		upsertEnvErr: errors.New("env write forbidden"),
		deployment:   &vercel.Deployment{UID: "dpl_1", Name: "crm"},
	}
	platform := &fakePlatform{
		creds: healthyCreds(),
		functions: []supabase.EdgeFunction{
			{Slug: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Status: "ACTIVE"},
		},
	}

	report := newOrchestrator(hosting, platform).Run(context.Background(), validInput())

	assert.False(t, report.OK)
	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, "vercel_env", last.ID)
	assert.Equal(t, installer.StatusError, last.Status)
	// the function check and redeploy never ran
	assert.Len(t, report.Steps, 5)
	assert.Empty(t, report.Functions)
	assert.False(t, hosting.redeployed)
}

func TestInstallerRunHaltsOnSchemaFailure(t *testing.T) {
	hosting := &fakeHosting{}
	platform := &fakePlatform{creds: healthyCreds()}

	orch := newOrchestrator(hosting, platform,
		installer.WithSchemaApplier(func(ctx context.Context, connString string) error {
			return errors.New("connection refused")
		}),
	)

	report := orch.Run(context.Background(), validInput())

	assert.False(t, report.OK)
	last := report.Steps[len(report.Steps)-1]
	assert.Equal(t, "apply_schema", last.ID)
	assert.Equal(t, installer.StatusError, last.Status)
}

func TestInstallerRunExistingAdminWarns(t *testing.T) {
	hosting := &fakeHosting{deployment: &vercel.Deployment{UID: "dpl_1", Name: "crm"}}
	platform := &fakePlatform{
		creds: healthyCreds(),
		functions: []supabase.EdgeFunction{
			{Slug: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Status: "ACTIVE"},
		},
	}

	orch := newOrchestrator(hosting, platform,
		installer.WithAdminCreator(func(ctx context.Context, connString string, input installer.Input, hash string) (string, error) {
			return "admin account admin@example.com already exists, skipped", nil
		}),
	)

	report := orch.Run(context.Background(), validInput())

	assert.True(t, report.OK)
	admin := stepByID(t, report, "create_admin")
	assert.Equal(t, installer.StatusWarning, admin.Status)
}
