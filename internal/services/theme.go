package services

import (
  "fmt"
  "sort"
  "strings"
  "unicode"
  "unicode/utf8"

  "github.com/yungbote/neuroplan-backend/internal/types"
)

// themeBucket maps a set of interest keywords to a fixed theme. Buckets are
// checked in slice order: animals beat creative beat literacy.
type themeBucket struct {
  name      string
  keywords  []string
  theme     string
  rationale string
}

var themeBuckets = []themeBucket{
  {
    name: "animals",
    keywords: []string{
      "dinosaur", "animal", "creature", "dog", "cat", "bird", "insect",
      "bug", "ocean", "sea", "shark", "whale", "horse", "pet", "reptile",
    },
    theme:     "Amazing Animals and Creatures",
    rationale: "Animals came up again and again across the class, so every activity this week is anchored in the living world the students already care about.",
  },
  {
    name: "creative",
    keywords: []string{
      "lego", "build", "block", "art", "draw", "paint", "craft", "make",
      "construction", "minecraft", "design", "create",
    },
    theme:     "Builders and Makers",
    rationale: "The class shares a strong pull toward making and constructing, so the week is framed around designing, building, and creating together.",
  },
  {
    name: "literacy",
    keywords: []string{
      "book", "story", "stories", "read", "writing", "fairy", "comic", "tale",
    },
    theme:     "Story Explorers",
    rationale: "Stories and books are a shared thread in this class, so the week uses narrative as the doorway into every subject.",
  },
}

// InferClassTheme produces one unifying theme for a classroom from student
// interest lists. Pure function: same roster in, same theme out. Frequency
// ties resolve by first appearance in the flattened interest list.
func InferClassTheme(students []types.ClassroomStudent) types.ClassTheme {
  counts := map[string]int{}
  firstSeen := map[string]int{}
  order := 0
  for _, s := range students {
    for _, raw := range s.Interests {
      interest := strings.ToLower(strings.TrimSpace(raw))
      if _, seen := counts[interest]; !seen {
        firstSeen[interest] = order
      }
      counts[interest]++
      order++
    }
  }

  ranked := make([]string, 0, len(counts))
  for interest := range counts {
    ranked = append(ranked, interest)
  }
  sort.Slice(ranked, func(i, j int) bool {
    if counts[ranked[i]] != counts[ranked[j]] {
      return counts[ranked[i]] > counts[ranked[j]]
    }
    return firstSeen[ranked[i]] < firstSeen[ranked[j]]
  })
  if len(ranked) > 3 {
    ranked = ranked[:3]
  }

  bucket := matchBucket(ranked)

  var theme, rationale string
  if bucket != nil {
    theme = bucket.theme
    rationale = bucket.rationale
  } else {
    titled := make([]string, 0, len(ranked))
    for _, interest := range ranked {
      titled = append(titled, titleCase(interest))
    }
    theme = strings.Join(titled, ", ")
    if theme == "" {
      theme = "Exploring Our World"
    }
    rationale = fmt.Sprintf("The class's most common interests (%s) are woven through the week so every student finds a familiar anchor.", strings.Join(ranked, ", "))
  }

  connections := make([]string, 0, len(students))
  for _, s := range students {
    connections = append(connections, connectionFor(s, bucket, theme))
  }

  return types.ClassTheme{
    Theme:       theme,
    Rationale:   rationale,
    Connections: connections,
  }
}

func matchBucket(topInterests []string) *themeBucket {
  for i := range themeBuckets {
    for _, interest := range topInterests {
      if interestMatches(interest, &themeBuckets[i]) {
        return &themeBuckets[i]
      }
    }
  }
  return nil
}

func interestMatches(interest string, bucket *themeBucket) bool {
  if interest == "" {
    return false
  }
  for _, kw := range bucket.keywords {
    if strings.Contains(interest, kw) {
      return true
    }
  }
  return false
}

// connectionFor writes one sentence tying a student to the theme. Students
// with an interest inside the matched bucket get named with that interest;
// everyone else gets a generic bridge through their first interest.
func connectionFor(s types.ClassroomStudent, bucket *themeBucket, theme string) string {
  name := s.FirstName
  if name == "" {
    name = "This student"
  }

  if bucket != nil {
    matched := make([]string, 0, len(s.Interests))
    for _, raw := range s.Interests {
      interest := strings.ToLower(strings.TrimSpace(raw))
      if interestMatches(interest, bucket) {
        matched = append(matched, interest)
      }
    }
    if len(matched) > 0 {
      return fmt.Sprintf("%s's interest in %s connects directly to the %s theme.", name, strings.Join(matched, " and "), theme)
    }
  }

  first := ""
  if len(s.Interests) > 0 {
    first = strings.ToLower(strings.TrimSpace(s.Interests[0]))
  }
  if first == "" {
    first = "new discoveries"
  }
  return fmt.Sprintf("%s can explore %s through %s.", name, theme, first)
}

func titleCase(s string) string {
  words := strings.Fields(s)
  for i, w := range words {
    r, size := utf8.DecodeRuneInString(w)
    words[i] = string(unicode.ToUpper(r)) + w[size:]
  }
  return strings.Join(words, " ")
}
