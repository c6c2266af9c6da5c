package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LogAction writes one audit record for the request's caller.
func LogAction(c *fiber.Ctx, action string, details logrus.Fields) {
	fields := logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get(fiber.HeaderUserAgent),
	}
	if uid, ok := c.Locals("user_id").(string); ok {
		fields["user_id"] = uid
	}
	if rid, ok := c.Locals("reqid").(string); ok {
		fields["request_id"] = rid
	}
	for k, v := range details {
		fields[k] = v
	}
	Audit().WithFields(fields).Info("audit")
}

// LogCRUD is LogAction for row mutations.
func LogCRUD(c *fiber.Ctx, operation, resourceType string, resourceID any) {
	LogAction(c, "crud_"+operation, logrus.Fields{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
}
