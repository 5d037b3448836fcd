package service

// editDistance is the Damerau-Levenshtein distance over runes, counting
// an adjacent transposition as one edit.
func editDistance(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d = min(d, dp[i-2][j-2]+1)
			}
			dp[i][j] = d
		}
	}
	return dp[la][lb]
}

// similarity is the normalized edit similarity in [0..1].
func similarity(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	m := max(len(a), len(b))
	return 1 - float64(editDistance(a, b))/float64(m)
}

// PartialRatio is the best-alignment substring similarity on a 0..100
// scale: the shorter string slides across every equal-length window of
// the longer one and the best window ratio wins. Empty input scores 0.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	n := len(ra)
	best := 0.0
	for i := 0; i+n <= len(rb); i++ {
		if r := similarity(ra, rb[i:i+n]); r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return best * 100
}
