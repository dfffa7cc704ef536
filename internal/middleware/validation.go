package middleware

import (
	"syllabus-builder/internal/dashboard"
	"syllabus-builder/internal/logger"
	"syllabus-builder/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	WeekIndexKey = "validated_week_index"
	TabKey       = "validated_tab"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateSelection parses the week number and tab from path parameters, falling back
// to the query string. Both are optional and default to week 1 and the overview tab.
func (vm *ValidationMiddleware) ValidateSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := vm.parseSelection(c); err != nil {
			return err // This will be handled by ErrorHandler middleware
		}
		return c.Next()
	}
}

// SelectionOrRedirect is ValidateSelection for pages: an invalid week or tab sends the
// browser to target instead of returning an error body.
func (vm *ValidationMiddleware) SelectionOrRedirect(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := vm.parseSelection(c); err != nil {
			logger.Get().Debug("Invalid dashboard selection, redirecting",
				zap.String("path", c.OriginalURL()),
				zap.Error(err),
			)
			return c.Redirect(target, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

func (vm *ValidationMiddleware) parseSelection(c *fiber.Ctx) error {
	week := c.Params("week")
	if week == "" {
		week = c.Query("week")
	}
	weekIndex, errs := vm.validator.ParseWeekNumber(week)
	if len(errs) > 0 {
		return errs
	}

	tabParam := c.Params("tab")
	if tabParam == "" {
		tabParam = c.Query("tab")
	}
	tab, err := dashboard.ParseTab(tabParam)
	if err != nil {
		return err
	}

	c.Locals(WeekIndexKey, weekIndex)
	c.Locals(TabKey, tab)
	return nil
}

// Selection returns the values stored by ValidateSelection.
func Selection(c *fiber.Ctx) (int, dashboard.Tab) {
	weekIndex, _ := c.Locals(WeekIndexKey).(int)
	tab, ok := c.Locals(TabKey).(dashboard.Tab)
	if !ok {
		tab = dashboard.TabOverview
	}
	return weekIndex, tab
}
