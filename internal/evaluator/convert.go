package evaluator

// isZeroString mirrors int_function/float_function's is_zero_string
// loop: a string (including the empty string, which the loop simply
// never rejects) counts as "zero" if every character is '0' — and, for
// float_function, '.' is accepted too.
func isZeroString(s string, allowDot bool) bool {
	for _, c := range s {
		if c == '0' {
			continue
		}
		if allowDot && c == '.' {
			continue
		}
		return false
	}
	return true
}

// looseAtoi mirrors C's atoi: skip leading whitespace, an optional
// sign, then consume decimal digits until the first non-digit; any
// unparseable prefix yields 0.
func looseAtoi(s string) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int64(s[i]-'0')
		i++
	}
	if neg {
		n = -n
	}
	return n
}

// looseAtof mirrors C's atof: leading whitespace, optional sign, digits,
// an optional '.' and fractional digits. No exponent support — nuPython
// source never writes scientific notation.
func looseAtof(s string) float64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var whole float64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		whole = whole*10 + float64(s[i]-'0')
		i++
	}
	frac := 0.0
	if i < len(s) && s[i] == '.' {
		i++
		scale := 0.1
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			frac += float64(s[i]-'0') * scale
			scale /= 10
			i++
		}
	}
	result := whole + frac
	if neg {
		result = -result
	}
	return result
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
