package services

import (
  "regexp"
  "strings"
)

// The prompt instructs the model to separate bubbles with "||| ". When the
// delimiter shows up we trust it; otherwise we fall back to sentence
// splitting so a paragraph-shaped reply still reads like separate texts.
const bubbleDelimiter = "||| "

var (
  sentenceEndRe = regexp.MustCompile(`[.!?]+\s+`)
  separatorRe   = regexp.MustCompile(`\s*[|,:]\s*`)
)

// SegmentReply turns one raw completion into the ordered list of chat
// bubbles. Output parts are non-empty and their order is both the display
// order and the persistence order.
func SegmentReply(raw string) []string {
  var parts []string
  if strings.Contains(raw, bubbleDelimiter) {
    for _, part := range strings.Split(raw, bubbleDelimiter) {
      part = strings.TrimSpace(part)
      if part != "" {
        parts = append(parts, part)
      }
    }
  } else {
    for _, sentence := range splitSentences(raw) {
      for _, segment := range separatorRe.Split(sentence, -1) {
        segment = strings.TrimSpace(segment)
        if segment == "" {
          continue
        }
        if wordCount(segment) > 7 {
          parts = append(parts, chunkWords(segment, 6)...)
        } else {
          parts = append(parts, segment)
        }
      }
    }
  }

  // Length normalization runs over every part regardless of which path
  // produced it. The 7-word/60-char gate and the 5-word regrouping are
  // deliberately looser than the 6-word chunking above; the cadence the
  // product ships depends on that two-stage behavior.
  var out []string
  for _, part := range parts {
    part = strings.TrimSpace(part)
    if part == "" {
      continue
    }
    if wordCount(part) > 7 || len(part) > 60 {
      out = append(out, chunkWords(part, 5)...)
    } else {
      out = append(out, part)
    }
  }
  return out
}

func splitSentences(text string) []string {
  var out []string
  last := 0
  for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
    sentence := strings.TrimSpace(text[last:loc[1]])
    if sentence != "" {
      out = append(out, sentence)
    }
    last = loc[1]
  }
  if last < len(text) {
    if rest := strings.TrimSpace(text[last:]); rest != "" {
      out = append(out, rest)
    }
  }
  return out
}

func wordCount(s string) int {
  return len(strings.Fields(s))
}

func chunkWords(s string, size int) []string {
  words := strings.Fields(s)
  var out []string
  for i := 0; i < len(words); i += size {
    end := i + size
    if end > len(words) {
      end = len(words)
    }
    out = append(out, strings.Join(words[i:end], " "))
  }
  return out
}
