package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// pageParam reads a positive integer query parameter. Absent parameters take
// def; anything that is not a positive integer becomes 1.
func pageParam(c *fiber.Ctx, key, def string) int {
	n, err := strconv.Atoi(c.Query(key, def))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
