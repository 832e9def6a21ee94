package services

import (
  "fmt"
  "os"
  "path/filepath"
  "regexp"
  "strconv"
  "strings"

  "github.com/yungbote/neuroplan-backend/internal/logger"
)

// CurriculumService holds curriculum reference documents in memory. Loaded
// once at startup; read-only afterwards. Lookups never fail; an empty
// excerpt is a valid answer.
type CurriculumService interface {
  GetContextForYearLevel(yearLevel string, subject string) string
  DocumentCount() int
}

type curriculumDoc struct {
  Subject  string
  YearFrom int
  YearTo   int
  Text     string
}

type curriculumService struct {
  log  *logger.Logger
  docs []curriculumDoc
}

// Filenames carry the routing metadata: <subject>_<from>-<to>.md where a
// year of "f" or "foundation" means Foundation (grade 0).
// Examples: mathematics_f-6.md, english_3-6.md.
var curriculumFileRe = regexp.MustCompile(`^([a-z_]+)_(f|foundation|\d+)-(\d+)$`)

var yearHeadingRe = regexp.MustCompile(`(?i)^#*\s*(Foundation Year|Year\s+(\d+))\s*$`)

func NewCurriculumService(log *logger.Logger, dir string) (CurriculumService, error) {
  serviceLog := log.With("service", "CurriculumService")

  svc := &curriculumService{log: serviceLog}

  entries, err := os.ReadDir(dir)
  if err != nil {
    // missing directory degrades to empty excerpts, it does not stop boot
    serviceLog.Warn("Curriculum directory not readable, prompts will carry no curriculum context", "dir", dir, "error", err)
    return svc, nil
  }

  for _, entry := range entries {
    if entry.IsDir() {
      continue
    }
    name := entry.Name()
    base := strings.TrimSuffix(name, filepath.Ext(name))
    m := curriculumFileRe.FindStringSubmatch(strings.ToLower(base))
    if m == nil {
      serviceLog.Debug("Skipping file with unrecognized curriculum name", "file", name)
      continue
    }

    from := 0
    if m[2] != "f" && m[2] != "foundation" {
      from, _ = strconv.Atoi(m[2])
    }
    to, _ := strconv.Atoi(m[3])

    data, err := os.ReadFile(filepath.Join(dir, name))
    if err != nil {
      serviceLog.Warn("Failed to read curriculum document", "file", name, "error", err)
      continue
    }

    svc.docs = append(svc.docs, curriculumDoc{
      Subject:  strings.ReplaceAll(m[1], "_", " "),
      YearFrom: from,
      YearTo:   to,
      Text:     string(data),
    })
    serviceLog.Info("Loaded curriculum document", "file", name, "subject", m[1], "year_from", from, "year_to", to)
  }

  return svc, nil
}

func (cs *curriculumService) DocumentCount() int {
  return len(cs.docs)
}

// GetContextForYearLevel returns the text of each matching document's section
// for the requested year. Subject is optional; empty matches everything.
func (cs *curriculumService) GetContextForYearLevel(yearLevel string, subject string) string {
  grade, ok := parseYearLevel(yearLevel)
  if !ok {
    return ""
  }

  subject = strings.ToLower(strings.TrimSpace(subject))

  var parts []string
  for _, doc := range cs.docs {
    if grade < doc.YearFrom || grade > doc.YearTo {
      continue
    }
    if subject != "" && !strings.Contains(doc.Subject, subject) && !strings.Contains(subject, doc.Subject) {
      continue
    }
    section := extractYearSection(doc.Text, grade)
    if section != "" {
      parts = append(parts, fmt.Sprintf("%s:\n%s", titleCase(doc.Subject), section))
    }
  }
  return strings.Join(parts, "\n\n")
}

// parseYearLevel accepts "Foundation", "F", "Year 3", or a bare number.
func parseYearLevel(yearLevel string) (int, bool) {
  s := strings.ToLower(strings.TrimSpace(yearLevel))
  if s == "" {
    return 0, false
  }
  if s == "f" || s == "foundation" || s == "foundation year" || s == "prep" {
    return 0, true
  }
  s = strings.TrimPrefix(s, "year")
  s = strings.TrimSpace(s)
  n, err := strconv.Atoi(s)
  if err != nil || n < 0 {
    return 0, false
  }
  return n, true
}

// extractYearSection collects the lines under the heading for the requested
// year, stopping at the next year heading.
func extractYearSection(text string, grade int) string {
  lines := strings.Split(text, "\n")
  var out []string
  collecting := false
  for _, line := range lines {
    m := yearHeadingRe.FindStringSubmatch(strings.TrimSpace(line))
    if m != nil {
      if collecting {
        break
      }
      headingGrade := 0
      if m[2] != "" {
        headingGrade, _ = strconv.Atoi(m[2])
      }
      if headingGrade == grade {
        collecting = true
      }
      continue
    }
    if collecting {
      out = append(out, line)
    }
  }
  return strings.TrimSpace(strings.Join(out, "\n"))
}
