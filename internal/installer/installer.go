// internal/installer/installer.go
package installer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/platform/supabase"
	"github.com/vinculocrm/vinculo/internal/platform/vercel"
)

// StepStatus is the outcome of a single installation step
type StepStatus string

const (
	StatusOK      StepStatus = "ok"
	StatusWarning StepStatus = "warning"
	StatusError   StepStatus = "error"
	StatusRunning StepStatus = "running"
)

// StepResult reports the outcome of one installation step
type StepResult struct {
	ID      string     `json:"id"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message"`
}

// FunctionResult is the outcome for one serverless function
type FunctionResult struct {
	Slug  string `json:"slug"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report is the full outcome of an installation run. OK is true when no
// step ended in an error; warnings do not fail a run. Functions is only
// filled when the run checked serverless functions.
type Report struct {
	OK        bool             `json:"ok"`
	Steps     []StepResult     `json:"steps"`
	Functions []FunctionResult `json:"functions,omitempty"`
}

// Input carries everything the installer needs to wire a deployment.
// The database platform side accepts either a management access token
// with a project ref, or explicit credentials (project URL plus a full
// database connection string) for operators who paste them by hand.
type Input struct {
	SupabaseProjectRef     string   `json:"supabaseProjectRef"`
	SupabaseAccessToken    string   `json:"supabaseAccessToken"`
	SupabaseURL            string   `json:"supabaseUrl" validate:"omitempty,url"`
	SupabaseAnonKey        string   `json:"supabaseAnonKey"`
	SupabaseServiceRoleKey string   `json:"supabaseServiceRoleKey"`
	DatabaseURL            string   `json:"databaseUrl"`
	DatabasePassword       string   `json:"databasePassword"`
	VercelToken            string   `json:"vercelToken" validate:"required"`
	VercelProjectID        string   `json:"vercelProjectId" validate:"required"`
	VercelTeamID           string   `json:"vercelTeamId"`
	Targets                []string `json:"targets" validate:"omitempty,dive,oneof=production preview development"`
	DeployEdgeFunctions    bool     `json:"deployEdgeFunctions"`
	AdminEmail             string   `json:"adminEmail" validate:"required,email"`
	AdminPassword          string   `json:"adminPassword" validate:"required,min=6"`
	AdminName              string   `json:"adminName" validate:"required"`
	CompanyName            string   `json:"companyName" validate:"required"`
	BaseURL                string   `json:"baseUrl" validate:"omitempty,url"`
}

// manualCredentials reports whether the operator supplied explicit
// credentials instead of a management access token
func (in Input) manualCredentials() bool {
	return in.SupabaseURL != "" && in.DatabaseURL != ""
}

// HostingAPI is the subset of the hosting platform client the installer uses
type HostingAPI interface {
	GetProject(ctx context.Context, projectID string) (*vercel.Project, error)
	UpsertEnv(ctx context.Context, projectID string, envs []vercel.EnvVar) error
	LatestDeployment(ctx context.Context, projectID string) (*vercel.Deployment, error)
	Redeploy(ctx context.Context, deployment *vercel.Deployment) error
}

// DatabasePlatformAPI is the subset of the database platform client the installer uses
type DatabasePlatformAPI interface {
	ResolveCredentials(ctx context.Context, ref string) (*supabase.Credentials, []string, error)
	ListEdgeFunctions(ctx context.Context, ref string) ([]supabase.EdgeFunction, error)
}

// requiredEdgeFunctions are the serverless functions a complete
// deployment is expected to carry.
var requiredEdgeFunctions = []string{"send-email", "whatsapp-webhook"}

// HostingFactory builds a hosting platform client for the token and
// optional team scope carried in the install input.
type HostingFactory func(token, teamID string) HostingAPI

// PlatformFactory builds a database platform client for the access token
// carried in the install input.
type PlatformFactory func(accessToken string) DatabasePlatformAPI

// Orchestrator runs the installation steps in order, halting on the
// first error. Warnings are reported but do not stop the run.
type Orchestrator struct {
	newHosting  HostingFactory
	newPlatform PlatformFactory
	hasher      *auth.PasswordHasher
	validate    *validator.Validate
	logger      *slog.Logger

	// overridable for tests; defaults connect over pgx
	applySchema func(ctx context.Context, connString string) error
	createAdmin func(ctx context.Context, connString string, input Input, passwordHash string) (string, error)
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithSchemaApplier overrides how the bootstrap schema is applied
func WithSchemaApplier(fn func(ctx context.Context, connString string) error) Option {
	return func(o *Orchestrator) { o.applySchema = fn }
}

// WithAdminCreator overrides how the initial admin account is written
func WithAdminCreator(fn func(ctx context.Context, connString string, input Input, passwordHash string) (string, error)) Option {
	return func(o *Orchestrator) { o.createAdmin = fn }
}

// NewOrchestrator creates an installer orchestrator
func NewOrchestrator(newHosting HostingFactory, newPlatform PlatformFactory, hasher *auth.PasswordHasher, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		newHosting:  newHosting,
		newPlatform: newPlatform,
		hasher:      hasher,
		validate:    validator.New(),
		logger:      logger,
		applySchema: pgxApplySchema,
		createAdmin: pgxCreateAdmin,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type stepFunc func(ctx context.Context, run *runState) StepResult

type step struct {
	id string
	fn stepFunc
}

// runState carries values resolved by earlier steps into later ones
type runState struct {
	input      Input
	hosting    HostingAPI
	platform   DatabasePlatformAPI
	creds      *supabase.Credentials
	connString string
	functions  []FunctionResult
}

// Run executes all installation steps in order. The run halts at the
// first step that errors; every executed step appears in the report.
// The edge function step only runs when the input requests it.
func (o *Orchestrator) Run(ctx context.Context, input Input) *Report {
	run := &runState{input: input}
	steps := []step{
		{"validate_input", o.stepValidateInput},
		{"supabase_resolve", o.stepResolveCredentials},
		{"apply_schema", o.stepApplySchema},
		{"create_admin", o.stepCreateAdmin},
		{"vercel_env", o.stepWriteEnv},
	}
	if input.DeployEdgeFunctions {
		steps = append(steps, step{"edge_functions", o.stepCheckEdgeFunctions})
	}
	steps = append(steps, step{"vercel_redeploy", o.stepRedeploy})

	report := &Report{OK: true}
	for _, s := range steps {
		o.logger.Info("installer step started", "step", s.id)
		result := s.fn(ctx, run)
		result.ID = s.id
		report.Steps = append(report.Steps, result)
		o.logger.Info("installer step finished", "step", s.id, "status", result.Status)

		if result.Status == StatusError {
			report.OK = false
			break
		}
	}
	report.Functions = run.functions
	return report
}

func (o *Orchestrator) stepValidateInput(_ context.Context, run *runState) StepResult {
	run.input.AdminEmail = strings.TrimSpace(strings.ToLower(run.input.AdminEmail))
	run.input.SupabaseProjectRef = strings.TrimSpace(run.input.SupabaseProjectRef)
	run.input.SupabaseURL = strings.TrimSpace(run.input.SupabaseURL)
	run.input.DatabaseURL = strings.TrimSpace(run.input.DatabaseURL)
	run.input.VercelProjectID = strings.TrimSpace(run.input.VercelProjectID)

	if err := o.validate.Struct(run.input); err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("invalid input: %v", err)}
	}

	if !run.input.manualCredentials() {
		if run.input.SupabaseAccessToken == "" || run.input.SupabaseProjectRef == "" || run.input.DatabasePassword == "" {
			return StepResult{
				Status:  StatusError,
				Message: "provide either an access token with project ref and database password, or an explicit project url and database url",
			}
		}
	}

	run.hosting = o.newHosting(run.input.VercelToken, run.input.VercelTeamID)
	if run.input.SupabaseAccessToken != "" {
		run.platform = o.newPlatform(run.input.SupabaseAccessToken)
	}
	return StepResult{Status: StatusOK, Message: "input validated"}
}

func (o *Orchestrator) stepResolveCredentials(ctx context.Context, run *runState) StepResult {
	// Hand-pasted credentials bypass the management API entirely
	if run.input.manualCredentials() {
		run.creds = &supabase.Credentials{
			ProjectURL:     strings.TrimSuffix(run.input.SupabaseURL, "/"),
			AnonKey:        run.input.SupabaseAnonKey,
			ServiceRoleKey: run.input.SupabaseServiceRoleKey,
		}
		run.connString = run.input.DatabaseURL

		var warnings []string
		if run.creds.AnonKey == "" {
			warnings = append(warnings, "anon key not provided")
		}
		if run.creds.ServiceRoleKey == "" {
			warnings = append(warnings, "service_role key not provided")
		}
		if len(warnings) > 0 {
			return StepResult{Status: StatusWarning, Message: strings.Join(warnings, "; ")}
		}
		return StepResult{Status: StatusOK, Message: fmt.Sprintf("using provided credentials for %s", run.creds.ProjectURL)}
	}

	creds, warnings, err := run.platform.ResolveCredentials(ctx, run.input.SupabaseProjectRef)
	if err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("could not resolve project credentials: %v", err)}
	}
	run.creds = creds
	run.connString = creds.ConnString(run.input.DatabasePassword)

	if len(warnings) > 0 {
		return StepResult{Status: StatusWarning, Message: strings.Join(warnings, "; ")}
	}
	return StepResult{Status: StatusOK, Message: fmt.Sprintf("resolved credentials for %s", creds.ProjectURL)}
}

func (o *Orchestrator) stepApplySchema(ctx context.Context, run *runState) StepResult {
	if run.connString == "" {
		return StepResult{Status: StatusError, Message: "no database host resolved, cannot apply schema"}
	}
	if err := o.applySchema(ctx, run.connString); err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("schema apply failed: %v", err)}
	}
	return StepResult{Status: StatusOK, Message: "schema applied"}
}

func (o *Orchestrator) stepCreateAdmin(ctx context.Context, run *runState) StepResult {
	hash, err := o.hasher.Hash(run.input.AdminPassword)
	if err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("could not hash admin password: %v", err)}
	}

	msg, err := o.createAdmin(ctx, run.connString, run.input, hash)
	if err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("admin setup failed: %v", err)}
	}
	if msg != "" {
		return StepResult{Status: StatusWarning, Message: msg}
	}
	return StepResult{Status: StatusOK, Message: fmt.Sprintf("admin account created for %s", run.input.AdminEmail)}
}

func (o *Orchestrator) stepWriteEnv(ctx context.Context, run *runState) StepResult {
	if _, err := run.hosting.GetProject(ctx, run.input.VercelProjectID); err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("could not read hosting project: %v", err)}
	}

	targets := run.input.Targets
	if len(targets) == 0 {
		targets = []string{"production", "preview"}
	}
	envs := []vercel.EnvVar{
		{Key: "SUPABASE_URL", Value: run.creds.ProjectURL, Type: "plain", Target: targets},
		{Key: "SUPABASE_ANON_KEY", Value: run.creds.AnonKey, Type: "encrypted", Target: targets},
		{Key: "SUPABASE_SERVICE_ROLE_KEY", Value: run.creds.ServiceRoleKey, Type: "encrypted", Target: targets},
		{Key: "DATABASE_URL", Value: run.connString, Type: "encrypted", Target: targets},
	}
	if run.input.BaseURL != "" {
		envs = append(envs, vercel.EnvVar{Key: "APP_BASE_URL", Value: run.input.BaseURL, Type: "plain", Target: targets})
	}

	if err := run.hosting.UpsertEnv(ctx, run.input.VercelProjectID, envs); err != nil {
		return StepResult{Status: StatusError, Message: fmt.Sprintf("could not write environment variables: %v", err)}
	}
	return StepResult{Status: StatusOK, Message: fmt.Sprintf("wrote %d environment variables", len(envs))}
}

func (o *Orchestrator) stepCheckEdgeFunctions(ctx context.Context, run *runState) StepResult {
	if run.platform == nil {
		return StepResult{Status: StatusWarning, Message: "no access token provided, cannot check edge functions"}
	}

	functions, err := run.platform.ListEdgeFunctions(ctx, run.input.SupabaseProjectRef)
	if err != nil {
		return StepResult{Status: StatusWarning, Message: fmt.Sprintf("could not list edge functions: %v", err)}
	}

	deployed := make(map[string]string, len(functions))
	for _, fn := range functions {
		deployed[fn.Slug] = fn.Status
	}

	var outcomes []string
	missing := false
	for _, slug := range requiredEdgeFunctions {
		status, ok := deployed[slug]
		switch {
		case !ok:
			outcomes = append(outcomes, slug+": missing")
			run.functions = append(run.functions, FunctionResult{Slug: slug, Error: "missing"})
			missing = true
		case status != "" && !strings.EqualFold(status, "ACTIVE"):
			outcomes = append(outcomes, fmt.Sprintf("%s: %s", slug, strings.ToLower(status)))
			run.functions = append(run.functions, FunctionResult{Slug: slug, Error: strings.ToLower(status)})
			missing = true
		default:
			outcomes = append(outcomes, slug+": ok")
			run.functions = append(run.functions, FunctionResult{Slug: slug, OK: true})
		}
	}

	message := strings.Join(outcomes, ", ")
	if missing {
		return StepResult{Status: StatusWarning, Message: message}
	}
	return StepResult{Status: StatusOK, Message: message}
}

// stepRedeploy triggers a production redeploy so the new environment
// variables take effect. A failure here leaves the install usable, so
// it downgrades to a warning instead of failing the run.
func (o *Orchestrator) stepRedeploy(ctx context.Context, run *runState) StepResult {
	deployment, err := run.hosting.LatestDeployment(ctx, run.input.VercelProjectID)
	if err != nil {
		return StepResult{Status: StatusWarning, Message: fmt.Sprintf("could not look up latest deployment: %v", err)}
	}
	if deployment == nil {
		return StepResult{Status: StatusWarning, Message: "no previous deployment found, deploy manually to apply the new environment"}
	}

	if err := run.hosting.Redeploy(ctx, deployment); err != nil {
		return StepResult{Status: StatusWarning, Message: fmt.Sprintf("redeploy failed, trigger one manually: %v", err)}
	}
	return StepResult{Status: StatusOK, Message: "production redeploy triggered"}
}
