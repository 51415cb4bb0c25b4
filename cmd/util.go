package main

import (
	"sort"
	"strconv"
	"strings"
)

// miscellaneous utility functions

func firstElementOf(s []string) string {
	// return first element of slice, or blank string if empty
	val := ""

	if len(s) > 0 {
		val = s[0]
	}

	return val
}

func sliceContainsString(haystack []string, needle string, insensitive bool) bool {
	if len(haystack) == 0 {
		return false
	}

	for _, item := range haystack {
		a := item
		b := needle

		if insensitive == true {
			a = strings.ToLower(item)
			b = strings.ToLower(needle)
		}

		if a == b {
			return true
		}
	}

	return false
}

func sliceContainsAllValuesFromSlice(haystack []string, needles []string, insensitive bool) bool {
	if len(haystack) == 0 || len(needles) == 0 {
		return false
	}

	for _, needle := range needles {
		if sliceContainsString(haystack, needle, insensitive) == false {
			return false
		}
	}

	return true
}

func slicesAreEqual(haystack []string, needles []string, insensitive bool) bool {
	if sliceContainsAllValuesFromSlice(haystack, needles, insensitive) == false {
		return false
	}

	if len(haystack) != len(needles) {
		return false
	}

	return true
}

func sliceContainsInt(haystack []int, needle int) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}

	return false
}

func maxIntValue(s []int) int {
	val := 0

	for _, item := range s {
		if item > val {
			val = item
		}
	}

	return val
}

func nonemptyValues(val []string) []string {
	res := []string{}

	for _, s := range val {
		if s != "" {
			res = append(res, s)
		}
	}

	return res
}

func integerWithMinimum(str string, min int) int {
	val, err := strconv.Atoi(str)

	// fallback for invalid or nonsensical values
	if err != nil || val < min {
		val = min
	}

	return val
}

func sortedMapKeys(m map[string][]string) []string {
	var keys []string

	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func copyFilterMap(m map[string][]string) map[string][]string {
	c := make(map[string][]string)

	for key, values := range m {
		c[key] = append([]string(nil), values...)
	}

	return c
}
