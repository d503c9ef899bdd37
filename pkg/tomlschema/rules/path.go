package rules

import "strconv"

// ItemPath returns the path of the i-th item of the array at path.
func ItemPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
