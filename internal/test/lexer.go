package test

import (
	"math/rand"
	"strconv"
	"strings"
)

const validTokens = "x;y;abc;0;1;7;42;123456;+;-;*;/;^;(;)"

// GetRandomTokens returns size random tokens separated by spaces. The result scans
// cleanly but is rarely a valid expression.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression returns a syntactically valid expression in the variable
// name, nested at most maxDepth levels.
func GetRandomExpression(name string, maxDepth int) string {
	if maxDepth == 0 || rand.Intn(maxDepth+1) == 0 {
		if rand.Intn(2) == 0 {
			return name
		}
		return strconv.Itoa(rand.Intn(20))
	}

	switch rand.Intn(6) {
	case 0:
		return "-" + GetRandomExpression(name, maxDepth-1)
	case 1:
		return "(" + GetRandomExpression(name, maxDepth-1) + ")^" + strconv.Itoa(rand.Intn(4))
	default:
		ops := []string{"+", "-", "*", "/"}
		return "(" + GetRandomExpression(name, maxDepth-1) + " " + ops[rand.Intn(len(ops))] + " " +
			GetRandomExpression(name, maxDepth-1) + ")"
	}
}
