// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "strings"

// editDistance returns the optimal string alignment distance between a and
// b: insertions, deletions, substitutions and adjacent transpositions each
// cost one.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	// Three rolling rows: two back for transpositions, previous, current.
	n := len(b) + 1
	prev2 := make([]int, n)
	prev := make([]int, n)
	cur := make([]int, n)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j < n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[n-1]
}

// closest returns the candidate with the smallest edit distance to s, the
// first one winning ties.
func closest(s string, candidates []string) (best string, dist int) {
	dist = -1
	for _, c := range candidates {
		d := editDistance(s, c)
		if dist < 0 || d < dist {
			best, dist = c, d
		}
	}
	return best, dist
}

// suggestOption returns a registered option name close enough to tok to be
// worth a "did you mean". Short tokens get no suggestion.
func suggestOption(tok string, names []string) string {
	best, d := closest(tok, names)
	if d <= 0 {
		return ""
	}
	if d > len(strings.TrimLeft(tok, "-"))/3 {
		return ""
	}
	return best
}
