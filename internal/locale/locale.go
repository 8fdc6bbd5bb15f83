// Package locale provides the display strings for date-section labels.
package locale

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog holds the label strings for one language. It satisfies
// dateclass.Resolver.
type Catalog struct {
	Tag           string   `yaml:"tag"`
	LastMonthText string   `yaml:"last_month"`
	LastWeekText  string   `yaml:"last_week"`
	RecentText    string   `yaml:"recent"`
	Months        []string `yaml:"months"`
}

func (c *Catalog) LastMonth() string { return c.LastMonthText }
func (c *Catalog) LastWeek() string  { return c.LastWeekText }
func (c *Catalog) Recent() string    { return c.RecentText }

// Month returns the long-form name of m.
func (c *Catalog) Month(m time.Month) string {
	if m < time.January || m > time.December || len(c.Months) != 12 {
		return m.String()
	}
	return c.Months[m-1]
}

// English is the fallback catalog.
var English = &Catalog{
	Tag:           "en",
	LastMonthText: "Last month",
	LastWeekText:  "Last week",
	RecentText:    "Recent",
	Months: []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var builtin = []*Catalog{
	English,
	{
		Tag:           "de",
		LastMonthText: "Letzter Monat",
		LastWeekText:  "Letzte Woche",
		RecentText:    "Neueste",
		Months: []string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
	},
	{
		Tag:           "fr",
		LastMonthText: "Le mois dernier",
		LastWeekText:  "La semaine dernière",
		RecentText:    "Récent",
		Months: []string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
	},
	{
		Tag:           "es",
		LastMonthText: "El mes pasado",
		LastWeekText:  "La semana pasada",
		RecentText:    "Reciente",
		Months: []string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
	},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(builtin))
	for i, c := range builtin {
		tags[i] = language.MustParse(c.Tag)
	}
	return language.NewMatcher(tags)
}()

// Lookup returns the built-in catalog closest to tag (a BCP 47 tag such as
// "de-AT" or a POSIX locale such as "fr_FR.UTF-8"). Unknown or unparsable
// tags get English.
func Lookup(tag string) *Catalog {
	tag = normalizeTag(tag)
	if tag == "" {
		return English
	}
	t, err := language.Parse(tag)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return English
	}
	return builtin[idx]
}

// FromEnv picks a catalog from LC_ALL, LC_MESSAGES or LANG.
func FromEnv() *Catalog {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return Lookup(v)
		}
	}
	return English
}

func normalizeTag(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Load reads a YAML catalog from path. Blank fields are filled from base, or
// from English when base is nil.
func Load(path string, base *Catalog) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read label file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cannot parse label file %s: %w", path, err)
	}
	if n := len(c.Months); n != 0 && n != 12 {
		return nil, fmt.Errorf("label file %s: months must list 12 names, got %d", path, n)
	}

	if base == nil {
		base = English
	}
	if c.Tag == "" {
		c.Tag = base.Tag
	}
	if c.LastMonthText == "" {
		c.LastMonthText = base.LastMonthText
	}
	if c.LastWeekText == "" {
		c.LastWeekText = base.LastWeekText
	}
	if c.RecentText == "" {
		c.RecentText = base.RecentText
	}
	if len(c.Months) == 0 {
		c.Months = append([]string(nil), base.Months...)
	}
	return &c, nil
}
