// Package assets provides the stylesheet and HTML templates of composed documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in layout)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A deployment can override the stylesheet or one document template by
// placing a file with the same name under its asset directory; anything not
// overridden falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── document.css
//	└── templates/
//	    ├── plan.html      # single-plan document
//	    └── yearly.html    # yearly aggregate
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
