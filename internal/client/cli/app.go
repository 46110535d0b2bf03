package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/signbook/internal/client/config"
	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/logging"
	"github.com/dmitrijs2005/signbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/signbook/internal/services"
)

// maxSignatureFile caps what add and update will read from disk.
const maxSignatureFile = 5 << 20

type App struct {
	config  *config.Config
	store   repomanager.RepositoryManager
	records services.RecordService
	logger  logging.Logger

	reader *bufio.Reader
	out    io.Writer
	// prompts receives prompt text; io.Discard when stdin is not a terminal
	prompts io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, "text", os.Stderr)

	store, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	rs := services.NewRecordService(store.Records(), logger)

	a := newApp(rs, logger, os.Stdin, os.Stdout, isTerminal(int(os.Stdin.Fd())))
	a.config = c
	a.store = store
	return a, nil
}

func newApp(rs services.RecordService, l logging.Logger, in io.Reader, out io.Writer, interactive bool) *App {
	prompts := io.Discard
	if interactive {
		prompts = out
	}
	return &App{
		records: rs,
		logger:  l.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		prompts: prompts,
	}
}

// Run starts the REPL and closes the store when it ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.store == nil {
			return
		}
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "closing store failed", "error", err)
		}
	}()

	fmt.Fprintf(a.prompts, "Welcome to %s CLI (type 'help' for commands)\n", common.AppName)
	runREPL(ctx, a, a.reader, a.prompts, a.out)
}
