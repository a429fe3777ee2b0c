package services

import (
	"context"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/gitops"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/prompt"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/reporter"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/scaffolding"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// Phase names, used in errors and log fields.
const (
	PhasePrerequisites = "prerequisites"
	PhaseCollect       = "collect"
	PhaseSupabase      = "supabase"
	PhaseClone         = "clone"
	PhaseGitInit       = "git-init"
	PhaseCustomize     = "customize"
	PhaseEnvironment   = "environment"
	PhaseInstall       = "install"
	PhaseSupabaseCLI   = "supabase-cli"
)

// Dependencies are the capabilities the bootstrap pipeline drives.
type Dependencies struct {
	Config   *config.Config
	FS       afero.Fs
	Runner   runner.CommandRunner
	Git      gitops.Client
	Prompter prompt.Prompter
	Reporter reporter.Reporter
	Logger   logging.Logger

	// BaseDir resolves relative project directories. Defaults to the
	// current working directory.
	BaseDir string
	// Now stamps the generated documents. Defaults to time.Now.
	Now func() time.Time
}

// BootstrapService turns a template repository into a configured project.
type BootstrapService struct {
	cfg      *config.Config
	fs       afero.Fs
	runner   runner.CommandRunner
	git      gitops.Client
	prompter prompt.Prompter
	reporter reporter.Reporter
	logger   logging.Logger
	baseDir  string
	now      func() time.Time
}

// NewBootstrapService creates a bootstrap service.
func NewBootstrapService(deps Dependencies) *BootstrapService {
	s := &BootstrapService{
		cfg:      deps.Config,
		fs:       deps.FS,
		runner:   deps.Runner,
		git:      deps.Git,
		prompter: deps.Prompter,
		reporter: deps.Reporter,
		logger:   deps.Logger,
		baseDir:  deps.BaseDir,
		now:      deps.Now,
	}

	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.WithComponent("bootstrap")
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Result describes a finished run.
type Result struct {
	Project  types.ProjectConfig
	Supabase *types.SupabaseConfig
}

// Run executes every phase in order and stops at the first failure. Files
// written before the failure are left in place.
func (s *BootstrapService) Run(ctx context.Context) (*Result, error) {
	s.reporter.Heading("Welcome to AppPop Project Creator! 🚀")

	if err := s.CheckPrerequisites(ctx); err != nil {
		return nil, err
	}

	project, err := s.CollectProject(ctx)
	if err != nil {
		return nil, err
	}
	result := &Result{Project: project}
	log := s.logger.With("dir", project.WorkDir)

	if project.Options.IncludeSupabase {
		sb, err := s.ConfigureSupabase(ctx)
		if err != nil {
			return result, err
		}
		result.Supabase = sb
	}

	steps := []func(context.Context, types.ProjectConfig, *types.SupabaseConfig) error{
		s.CloneTemplate,
		s.InitRepository,
		s.CustomizeFiles,
		s.SetupEnvironment,
		s.InstallDependencies,
	}
	for _, step := range steps {
		if err := step(ctx, project, result.Supabase); err != nil {
			log.Error(ctx, err, "Bootstrap failed")
			return result, err
		}
	}

	if types.SupabaseEnabled(project.Options, result.Supabase) {
		if err := s.SetupSupabaseCLI(ctx, project, result.Supabase); err != nil {
			log.Error(ctx, err, "Bootstrap failed")
			return result, err
		}
	}

	scaffolding.PrintFinalInstructions(s.reporter, project.ProjectDir, project.Options)
	log.Info(ctx, "Bootstrap complete", "project", project.ProjectName)
	return result, nil
}

// phaseMessages are the progress texts of one phase.
type phaseMessages struct {
	start   string
	success string
	fail    string
}

// runPhase reports progress around fn and attaches the phase to any error.
func (s *BootstrapService) runPhase(ctx context.Context, phase, code string, msgs phaseMessages, fn func() error) error {
	s.reporter.PhaseStart(msgs.start)
	op := logging.StartOperation(s.logger.With("phase", phase), phase)

	if err := fn(); err != nil {
		s.reporter.PhaseFail(msgs.fail)
		op.EndWithError(ctx, err)
		return errors.PhaseError(phase, code, msgs.fail, err)
	}

	s.reporter.PhaseSuccess(msgs.success)
	op.End(ctx)
	return nil
}

func (s *BootstrapService) exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
