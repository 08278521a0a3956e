package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"asset-manager/internal/assetmanager/domain/model"
	"asset-manager/internal/shared/contextkeys"
	"asset-manager/internal/shared/errors"
	"asset-manager/internal/shared/logger"
	"asset-manager/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// RESTCallLogger records the start and end of every REST call.
type RESTCallLogger struct {
	log logger.Logger
}

func NewRESTCallLogger(log logger.Logger) *RESTCallLogger {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RESTCallLogger{log: log.WithComponent("asset-manager-rest")}
}

func (l *RESTCallLogger) logCall(call *restCall) {
	l.log.WithContext(call.ctx).WithFields(map[string]interface{}{
		"serverName": call.serverName,
		"userId":     call.userID,
		"method":     call.methodName,
	}).Debug("REST call")
}

func (l *RESTCallLogger) logReturn(call *restCall, resp response) {
	r := resp.base()
	fields := map[string]interface{}{
		"serverName":  call.serverName,
		"userId":      call.userID,
		"method":      call.methodName,
		"duration_ms": time.Since(call.started).Milliseconds(),
	}
	if !r.Failed() {
		l.log.WithContext(call.ctx).WithFields(fields).Debug("REST return")
		return
	}

	fields["exceptionClassName"] = r.ExceptionClassName
	fields["relatedHTTPCode"] = r.RelatedHTTPCode
	fields["exceptionErrorMessageId"] = r.ExceptionErrorMessageID
	entry := l.log.WithContext(call.ctx).WithFields(fields)
	if r.RelatedHTTPCode >= 500 {
		entry.Error(r.ExceptionErrorMessage)
		return
	}
	entry.Debug(r.ExceptionErrorMessage)
}

// restCall holds the per-request state shared by every REST operation.
type restCall struct {
	c          *fiber.Ctx
	ctx        context.Context
	serverName string
	userID     string
	methodName string
	started    time.Time
}

func newRESTCall(c *fiber.Ctx, methodName string) *restCall {
	serverName := c.Params("serverName")
	userID := c.Params("userId")

	ctx := utils.WithCaller(c.UserContext(), serverName, userID)
	if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
		ctx = context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
	}
	ctx = context.WithValue(ctx, contextkeys.OperationKey, methodName)

	return &restCall{
		c:          c,
		ctx:        ctx,
		serverName: serverName,
		userID:     userID,
		methodName: methodName,
		started:    time.Now(),
	}
}

// body decodes the request body into dst and reports whether one was sent.
func (r *restCall) body(dst interface{}) (bool, error) {
	raw := bytes.TrimSpace(r.c.Body())
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, errors.NewValidationError(fmt.Sprintf("the request body passed on the %s operation could not be parsed: %v", r.methodName, err)).
			WithCode("OMAG-COMMON-400-004").
			WithCause(err)
	}
	return true, nil
}

// requireBody decodes the request body into dst, failing when none was sent.
func (r *restCall) requireBody(dst interface{}) error {
	present, err := r.body(dst)
	if err != nil {
		return err
	}
	if !present {
		return errors.NewNoRequestBodyError(r.methodName)
	}
	return nil
}

func (r *restCall) param(name string) string {
	return r.c.Params(name)
}

func (r *restCall) queryBool(name string) bool {
	return r.c.QueryBool(name, false)
}

func (r *restCall) assetManagerIsHome() bool {
	return r.queryBool("assetManagerIsHome")
}

func (r *restCall) isMergeUpdate() bool {
	return r.queryBool("isMergeUpdate")
}

func (r *restCall) startFrom() int {
	return r.c.QueryInt("startFrom", 0)
}

func (r *restCall) pageSize() int {
	return r.c.QueryInt("pageSize", 0)
}

// options builds the query options from the query flags and the body's effective time.
func (r *restCall) options(effectiveTime *time.Time) model.QueryOptions {
	return model.QueryOptions{
		EffectiveTime:          effectiveTime,
		ForLineage:             r.queryBool("forLineage"),
		ForDuplicateProcessing: r.queryBool("forDuplicateProcessing"),
	}
}

// propertiesAs checks that a polymorphic properties field holds a T. A missing field
// yields the zero T.
func propertiesAs[T model.Properties](p *model.PolymorphicProperties, parameterName, methodName string) (T, error) {
	var zero T
	value := p.Unwrap()
	if value == nil {
		if p.ClassName() != "" {
			return zero, wrongClass[T](p.ClassName(), parameterName, methodName)
		}
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, wrongClass[T](p.ClassName(), parameterName, methodName)
	}
	return typed, nil
}

func wrongClass[T model.Properties](className, parameterName, methodName string) error {
	var zero T
	expected := strings.TrimPrefix(fmt.Sprintf("%T", zero), "*")
	if i := strings.LastIndex(expected, "."); i >= 0 {
		expected = expected[i+1:]
	}
	return errors.NewInvalidPropertiesError(className, expected, methodName).
		WithDetail("parameterName", parameterName)
}

// restBase is embedded by every REST services type.
type restBase struct {
	instances InstanceHandler
	calls     *RESTCallLogger
}

func (b *restBase) begin(c *fiber.Ctx, methodName string) *restCall {
	call := newRESTCall(c, methodName)
	b.calls.logCall(call)
	return call
}

func (b *restBase) end(call *restCall, resp response, err error) error {
	if err != nil {
		captureError(resp, err, call.methodName)
	}
	b.calls.logReturn(call, resp)
	return call.c.Status(fiber.StatusOK).JSON(resp)
}

func (b *restBase) guid(c *fiber.Ctx, methodName string, fn func(call *restCall) (string, error)) error {
	call := b.begin(c, methodName)
	resp := &GUIDResponse{FFDCResponseBase: newFFDCResponseBase()}
	guid, err := fn(call)
	if err == nil {
		resp.GUID = guid
	}
	return b.end(call, resp, err)
}

func (b *restBase) void(c *fiber.Ctx, methodName string, fn func(call *restCall) error) error {
	call := b.begin(c, methodName)
	resp := &VoidResponse{FFDCResponseBase: newFFDCResponseBase()}
	return b.end(call, resp, fn(call))
}

func element[T any](b *restBase, c *fiber.Ctx, methodName string, fn func(call *restCall) (T, error)) error {
	call := b.begin(c, methodName)
	resp := &ElementResponse[T]{FFDCResponseBase: newFFDCResponseBase()}
	value, err := fn(call)
	if err == nil {
		resp.Element = value
	}
	return b.end(call, resp, err)
}

func elements[T any](b *restBase, c *fiber.Ctx, methodName string, fn func(call *restCall) ([]T, error)) error {
	call := b.begin(c, methodName)
	resp := &ElementsResponse[T]{FFDCResponseBase: newFFDCResponseBase()}
	values, err := fn(call)
	if err == nil {
		resp.ElementList = values
	}
	return b.end(call, resp, err)
}

// optionalBody decodes the request body when one was sent and returns nil otherwise.
func optionalBody[T any](call *restCall) (*T, error) {
	body := new(T)
	present, err := call.body(body)
	if err != nil || !present {
		return nil, err
	}
	return body, nil
}

// requiredBody decodes the request body, failing with a no request body error when none was sent.
func requiredBody[T any](call *restCall) (*T, error) {
	body := new(T)
	if err := call.requireBody(body); err != nil {
		return nil, err
	}
	return body, nil
}
