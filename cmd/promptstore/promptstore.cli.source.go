package main

import (
	"errors"
	"strings"

	"github.com/itsatony/go-promptstore"
)

// parseSourceSpec splits "driver:locator" on the first separator.
func parseSourceSpec(spec string) (string, string, error) {
	driver, locator, ok := strings.Cut(spec, SourceSpecSeparator)
	if !ok || driver == "" || locator == "" {
		return "", "", errors.New(ErrMsgInvalidSourceSpec)
	}
	return driver, locator, nil
}

// openStore opens the source named by spec and builds a store over it.
// Commands that need the whole tree up front pass eager, which swaps the
// folder driver for its eager variant.
func openStore(spec string, eager bool) (*promptstore.Store, error) {
	driver, locator, err := parseSourceSpec(spec)
	if err != nil {
		return nil, err
	}
	if eager && driver == promptstore.SourceDriverFolder {
		driver = promptstore.SourceDriverFolderEager
	}

	source, err := promptstore.OpenSource(driver, locator)
	if err != nil {
		return nil, err
	}
	return promptstore.NewStoreFromSource(source)
}
