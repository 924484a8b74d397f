package model

import "strings"

// Technology is the canonical vocabulary a result is filed under. Raw client
// input goes through NormalizeTechnology before it ever reaches storage or a
// query, so the store only contains canonical values.
type Technology string

const (
	TechHTML    Technology = "html"
	TechJS      Technology = "js"
	TechReact   Technology = "react"
	TechNode    Technology = "node"
	TechMongoDB Technology = "mongodb"
	TechJava    Technology = "java"
	TechPython  Technology = "python"
	TechCPP     Technology = "cpp"
)

// techAliases maps common spellings to their canonical technology. Anything
// not listed passes through lowercased; unknown technologies are allowed,
// they just have no alias.
var techAliases = map[string]Technology{
	"javascript": TechJS,
	"js":         TechJS,
	"reactjs":    TechReact,
	"nodejs":     TechNode,
}

// NormalizeTechnology is total: every input maps to exactly one output.
func NormalizeTechnology(raw string) Technology {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := techAliases[lowered]; ok {
		return canonical
	}
	return Technology(lowered)
}

// NormalizeLevel lowercases a difficulty level ("Basic" -> "basic").
func NormalizeLevel(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
