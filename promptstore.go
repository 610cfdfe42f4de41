// Package promptstore manages named prompt text loaded from folders, JSON
// documents or memory, organized as a namespace tree with /-separated
// qualified names.
//
// # Basic Usage
//
// Create a store over a prompt folder and resolve prompts by name:
//
//	store, err := promptstore.NewFolderStore("./prompts")
//	if err != nil {
//	    return err
//	}
//	text, err := store.GetPrompt(ctx, "reviews/tone")
//
// Folder stores resolve lazily: a prompt file is read the first time its
// name is requested, then served from memory. Subdirectories become nested
// namespaces, file names without their .md or .txt extension become leaf
// names.
//
// # Prompt Sources
//
// Stores sit on top of a Source, selected by driver name:
//
//	src, err := promptstore.OpenSource("folder", "./prompts")
//	store := promptstore.New()            // in-memory only
//	store, err = promptstore.NewJSONStore("prompts.json")
//
// Built-in drivers: "folder" (lazy), "folder-eager", "json", "memory".
// Custom sources implement the Source interface and register through
// RegisterSourceDriver.
//
// # Placeholder Filling
//
// Prompt text may carry {{name}} markers. The Filler substitutes them by
// key or by position without any template engine:
//
//	text := promptstore.FillNamed("Hi {{name}}!", map[string]string{"name": "Ada"})
//	text = promptstore.FillPositional("{{day}} {{month}}", []string{"Monday", "August"})
//
// For full template semantics, the Renderer executes prompt text through
// the go-prompty engine with a per-source compile cache.
//
// # Preprocessing
//
// A Preprocessor runs text through an ordered pipeline of transforms and
// checks, stopping at the first rejection:
//
//	pre, err := promptstore.NewPreprocessor(promptstore.DefaultPreprocessorConfig())
//	result := pre.Process(raw)
//	if !result.OK {
//	    // result.Step names the rejecting stage
//	}
//
// # Prompt Reports
//
// Every materialized prompt carries a SHA-256 digest of its text. A report
// persists the digest map as JSON; reloading it in strict mode fails on the
// first prompt whose recomputed digest drifted:
//
//	path, err := store.SavePromptReport(ctx, "prompts.report")
//	err = store.LoadFromPromptReport(ctx, path, true)
//
// # Diagnostics
//
// Soft failures (duplicate names, extension collisions, unresolved
// placeholders, fill count mismatches) never abort an operation. They are
// logged and handed to a Recorder, so tests and callers can assert on them:
//
//	rec := promptstore.NewMemoryRecorder(promptstore.DefaultRecorderLimit)
//	store, err := promptstore.NewFolderStore("./prompts",
//	    promptstore.WithRecorder(rec),
//	    promptstore.WithLogger(logger),
//	)
package promptstore
