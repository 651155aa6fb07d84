// Package options holds the typed print settings and their validation.
//
// Settings arrive as a loose key/value blob. Validate maps each recognized
// key onto a typed field, drops anything else, and falls back to defaults for
// missing or malformed values.
package options

import (
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"
)

// SettingsKey is the key the print settings blob is stored under.
const SettingsKey = "wpf"

// Recognized setting keys.
const (
	KeyAuto          = "auto"
	KeyPlacement     = "placement"
	KeyPostTypes     = "post_types"
	KeyPrintText     = "print_text"
	KeyPrintTextPage = "print_text_page"
	KeyCSSClass      = "css_class"
	KeyLinkTarget    = "link_target"
	KeyEndnotes      = "endnotes"
	KeyEndnotesLabel = "endnotes_label"
)

// Default values.
const (
	DefaultPrintText     = "Print this entry"
	DefaultPrintTextPage = "Print this page"
	DefaultCSSClass      = "print_link"
	DefaultEndnotesLabel = "Endnotes"
)

// Placement decides where auto-inserted links go.
type Placement string

const (
	PlacementAbove Placement = "above"
	PlacementBelow Placement = "below"
	PlacementBoth  Placement = "both"
)

// LinkTarget decides whether print links open in a new window.
type LinkTarget string

const (
	TargetSame LinkTarget = "same"
	TargetNew  LinkTarget = "new"
)

// Options are the print settings for one request. Treat as immutable.
type Options struct {
	AutoInsert        bool
	Placement         Placement
	EligiblePostTypes []string
	PrimaryLinkText   string
	PageLinkText      string
	CSSClass          string
	LinkTarget        LinkTarget
	EndnotesEnabled   bool
	EndnotesLabel     string
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Options {
	return Options{
		AutoInsert:        false,
		Placement:         PlacementBelow,
		EligiblePostTypes: []string{"post", "page"},
		PrimaryLinkText:   DefaultPrintText,
		PageLinkText:      DefaultPrintTextPage,
		CSSClass:          DefaultCSSClass,
		LinkTarget:        TargetSame,
		EndnotesEnabled:   true,
		EndnotesLabel:     DefaultEndnotesLabel,
	}
}

// Eligible reports whether auto links may be inserted for postType.
func (o Options) Eligible(postType string) bool {
	return slices.Contains(o.EligiblePostTypes, postType)
}

// Map renders the options back into the stored key/value shape.
func (o Options) Map() map[string]any {
	return map[string]any{
		KeyAuto:          o.AutoInsert,
		KeyPlacement:     string(o.Placement),
		KeyPostTypes:     slices.Clone(o.EligiblePostTypes),
		KeyPrintText:     o.PrimaryLinkText,
		KeyPrintTextPage: o.PageLinkText,
		KeyCSSClass:      o.CSSClass,
		KeyLinkTarget:    string(o.LinkTarget),
		KeyEndnotes:      o.EndnotesEnabled,
		KeyEndnotesLabel: o.EndnotesLabel,
	}
}

// Validate builds sanitized Options from a raw settings blob. Post types not
// in registered are dropped. Keys absent from raw take their default.
func Validate(raw map[string]any, registered []string) Options {
	out := Defaults()
	if raw == nil {
		out.EligiblePostTypes = intersect(out.EligiblePostTypes, registered)
		return out
	}

	for _, key := range []string{
		KeyAuto, KeyPlacement, KeyPostTypes, KeyPrintText, KeyPrintTextPage,
		KeyCSSClass, KeyLinkTarget, KeyEndnotes, KeyEndnotesLabel,
	} {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		switch key {
		case KeyAuto:
			out.AutoInsert = asBool(v)
		case KeyPlacement:
			switch p := Placement(asString(v)); p {
			case PlacementAbove, PlacementBelow, PlacementBoth:
				out.Placement = p
			default:
				out.Placement = PlacementBelow
			}
		case KeyPostTypes:
			out.EligiblePostTypes = asStrings(v)
		case KeyPrintText:
			out.PrimaryLinkText = nonEmpty(html.EscapeString(asString(v)), DefaultPrintText)
		case KeyPrintTextPage:
			out.PageLinkText = html.EscapeString(asString(v))
		case KeyCSSClass:
			out.CSSClass = nonEmpty(html.EscapeString(asString(v)), DefaultCSSClass)
		case KeyLinkTarget:
			if LinkTarget(asString(v)) == TargetNew {
				out.LinkTarget = TargetNew
			} else {
				out.LinkTarget = TargetSame
			}
		case KeyEndnotes:
			out.EndnotesEnabled = asBool(v)
		case KeyEndnotesLabel:
			out.EndnotesLabel = nonEmpty(html.EscapeString(asString(v)), DefaultEndnotesLabel)
		}
	}

	out.EligiblePostTypes = intersect(out.EligiblePostTypes, registered)
	return out
}

// lookup finds key case-insensitively; config loaders lower-case keys.
func lookup(raw map[string]any, key string) (any, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}
	for k, v := range raw {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// intersect keeps the members of want that appear in registered, in the
// order of registered, without duplicates.
func intersect(want, registered []string) []string {
	out := make([]string, 0, len(want))
	for _, r := range registered {
		if slices.Contains(want, r) && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

func nonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
