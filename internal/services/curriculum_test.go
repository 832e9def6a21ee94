package services

import (
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/yungbote/neuroplan-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  return log
}

func writeCurriculumFile(t *testing.T, dir, name, content string) {
  t.Helper()
  if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
    t.Fatalf("write %s: %v", name, err)
  }
}

const mathsDoc = `# Mathematics F-6

## Foundation Year
Count to ten.

## Year 1
Partition numbers to 120.

## Year 2
Represent numbers to 1000.
`

func TestParseYearLevel(t *testing.T) {
  cases := []struct {
    in   string
    want int
    ok   bool
  }{
    {"Foundation", 0, true},
    {"foundation year", 0, true},
    {"F", 0, true},
    {"prep", 0, true},
    {"Year 3", 3, true},
    {"year 10", 10, true},
    {"4", 4, true},
    {"", 0, false},
    {"kindergarten", 0, false},
    {"-1", 0, false},
  }
  for _, tc := range cases {
    got, ok := parseYearLevel(tc.in)
    if ok != tc.ok || got != tc.want {
      t.Errorf("parseYearLevel(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
    }
  }
}

func TestExtractYearSection(t *testing.T) {
  got := extractYearSection(mathsDoc, 1)
  if got != "Partition numbers to 120." {
    t.Fatalf("unexpected section: %q", got)
  }

  if got := extractYearSection(mathsDoc, 0); got != "Count to ten." {
    t.Fatalf("unexpected foundation section: %q", got)
  }

  if got := extractYearSection(mathsDoc, 6); got != "" {
    t.Fatalf("expected empty section for missing year, got %q", got)
  }
}

func TestCurriculumService_GetContextForYearLevel(t *testing.T) {
  dir := t.TempDir()
  writeCurriculumFile(t, dir, "mathematics_f-6.md", mathsDoc)
  writeCurriculumFile(t, dir, "english_f-2.md", "## Year 1\nRead decodable texts.\n")
  writeCurriculumFile(t, dir, "notes.txt", "not a curriculum file")

  svc, err := NewCurriculumService(testLogger(t), dir)
  if err != nil {
    t.Fatalf("NewCurriculumService: %v", err)
  }
  if svc.DocumentCount() != 2 {
    t.Fatalf("expected 2 documents, got %d", svc.DocumentCount())
  }

  got := svc.GetContextForYearLevel("Year 1", "")
  if !strings.Contains(got, "Partition numbers to 120.") || !strings.Contains(got, "Read decodable texts.") {
    t.Fatalf("expected both subjects in excerpt, got %q", got)
  }

  got = svc.GetContextForYearLevel("Year 1", "mathematics")
  if strings.Contains(got, "Read decodable texts.") {
    t.Fatalf("subject filter leaked english content: %q", got)
  }
  if !strings.Contains(got, "Mathematics:") {
    t.Fatalf("expected subject label in excerpt, got %q", got)
  }
}

func TestCurriculumService_MissingDirDegrades(t *testing.T) {
  svc, err := NewCurriculumService(testLogger(t), filepath.Join(t.TempDir(), "nope"))
  if err != nil {
    t.Fatalf("missing dir must not error: %v", err)
  }
  if got := svc.GetContextForYearLevel("Year 3", "science"); got != "" {
    t.Fatalf("expected empty excerpt, got %q", got)
  }
}

func TestCurriculumService_YearOutOfDocumentRange(t *testing.T) {
  dir := t.TempDir()
  writeCurriculumFile(t, dir, "english_f-2.md", "## Year 1\nRead decodable texts.\n")

  svc, err := NewCurriculumService(testLogger(t), dir)
  if err != nil {
    t.Fatalf("NewCurriculumService: %v", err)
  }
  if got := svc.GetContextForYearLevel("Year 5", ""); got != "" {
    t.Fatalf("year 5 is outside f-2, expected empty excerpt, got %q", got)
  }
}
