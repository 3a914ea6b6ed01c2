package cmd

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vippsas/sqlfront/dialect"
)

// profile is the on-disk shape of a --dialect-profile YAML file, letting a
// caller override individual compatibility flags without hand-writing Go
// (same load-a-YAML-config idea as the teacher pack's DocstringYamldoc
// tooling, see DESIGN.md).
type profile struct {
	Mode                           string `yaml:"mode"`
	SquareBracketQuotedNames       *bool  `yaml:"squareBracketQuotedNames"`
	SupportPoundSymbolForColumns   *bool  `yaml:"supportPoundSymbolForColumns"`
	ZeroExLiteralsAreBinaryStrings *bool  `yaml:"zeroExLiteralsAreBinaryStrings"`
	MinusIsExcept                  *bool  `yaml:"minusIsExcept"`
	LimitKeyword                   *bool  `yaml:"limitKeyword"`
	BacktickQuotedNames            *bool  `yaml:"backtickQuotedNames"`
	ForceJoinOrder                 *bool  `yaml:"forceJoinOrder"`
	QuirksMode                     *bool  `yaml:"quirksMode"`
}

var modeByName = map[string]dialect.Mode{
	"regular":     dialect.Regular,
	"db2":         dialect.DB2,
	"derby":       dialect.Derby,
	"hsqldb":      dialect.HSQLDB,
	"mssqlserver": dialect.MSSQLServer,
	"mysql":       dialect.MySQL,
	"oracle":      dialect.Oracle,
	"postgresql":  dialect.PostgreSQL,
	"sqlserver":   dialect.SQLServer,
}

// loadFlags builds a dialect.Flags value from a --mode name and an optional
// --dialect-profile YAML file layered on top of that mode's defaults.
func loadFlags(modeName, profilePath string) (dialect.Flags, error) {
	mode, ok := modeByName[strings.ToLower(modeName)]
	if !ok {
		mode = dialect.Regular
	}
	flags := dialect.NewFlags(mode)
	if profilePath == "" {
		return flags, nil
	}
	data, err := os.ReadFile(profilePath)
	if err != nil {
		return flags, err
	}
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return flags, err
	}
	if p.Mode != "" {
		if m, ok := modeByName[strings.ToLower(p.Mode)]; ok {
			flags = dialect.NewFlags(m)
		}
	}
	applyBool(&flags.SquareBracketQuotedNames, p.SquareBracketQuotedNames)
	applyBool(&flags.SupportPoundSymbolForColumns, p.SupportPoundSymbolForColumns)
	applyBool(&flags.ZeroExLiteralsAreBinaryStrings, p.ZeroExLiteralsAreBinaryStrings)
	applyBool(&flags.MinusIsExcept, p.MinusIsExcept)
	applyBool(&flags.LimitKeyword, p.LimitKeyword)
	applyBool(&flags.BacktickQuotedNames, p.BacktickQuotedNames)
	applyBool(&flags.ForceJoinOrder, p.ForceJoinOrder)
	applyBool(&flags.QuirksMode, p.QuirksMode)
	return flags, nil
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

