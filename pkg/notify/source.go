package notify

import _ "embed"

// Source is the runtime source injected into generated packages
//
//go:embed notify.go
var Source string

// ImportPath is the import path used by generated code in import mode
const ImportPath = "github.com/qian-o/CodeGenerator/pkg/notify"
