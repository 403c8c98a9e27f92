package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itaybre/milim/internal/catalog"
	"github.com/itaybre/milim/internal/engine"
	"github.com/itaybre/milim/internal/store"
)

// openEngine loads the word catalog, opens the store, and rehydrates
// the engine. The returned func closes the store.
func openEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	cat, err := catalog.Load(resolveWordsPath(cmd))
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	eng, err := engine.New(cat, st, engine.Config{Logger: logger})
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("load learner state: %w", err)
	}
	return eng, func() { _ = st.Close() }, nil
}
