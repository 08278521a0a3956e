package http

import "asset-manager/internal/shared/errors"

// FFDCResponseBase carries the outcome of every REST call. A failed call fills in the
// exception fields; the transport status stays 200.
type FFDCResponseBase struct {
	RelatedHTTPCode         int                    `json:"relatedHTTPCode"`
	ExceptionClassName      string                 `json:"exceptionClassName,omitempty"`
	ExceptionCausedBy       string                 `json:"exceptionCausedBy,omitempty"`
	ActionDescription       string                 `json:"actionDescription,omitempty"`
	ExceptionErrorMessage   string                 `json:"exceptionErrorMessage,omitempty"`
	ExceptionErrorMessageID string                 `json:"exceptionErrorMessageId,omitempty"`
	ExceptionSystemAction   string                 `json:"exceptionSystemAction,omitempty"`
	ExceptionUserAction     string                 `json:"exceptionUserAction,omitempty"`
	ExceptionProperties     map[string]interface{} `json:"exceptionProperties,omitempty"`
}

func (r *FFDCResponseBase) base() *FFDCResponseBase { return r }

// Failed reports whether the response carries an exception.
func (r *FFDCResponseBase) Failed() bool { return r.ExceptionClassName != "" }

type response interface {
	base() *FFDCResponseBase
}

type GUIDResponse struct {
	FFDCResponseBase
	GUID string `json:"guid,omitempty"`
}

type VoidResponse struct {
	FFDCResponseBase
}

type ElementResponse[T any] struct {
	FFDCResponseBase
	Element T `json:"element,omitempty"`
}

type ElementsResponse[T any] struct {
	FFDCResponseBase
	ElementList []T `json:"elementList,omitempty"`
}

func newFFDCResponseBase() FFDCResponseBase {
	return FFDCResponseBase{RelatedHTTPCode: 200}
}

// captureError fills the exception fields of resp from err.
func captureError(resp response, err error, actionDescription string) {
	appErr := errors.AsAppError(err)
	r := resp.base()

	r.RelatedHTTPCode = appErr.HTTPCode
	if r.RelatedHTTPCode == 0 {
		r.RelatedHTTPCode = 500
	}
	r.ExceptionClassName = appErr.ExceptionClassName()
	r.ActionDescription = actionDescription
	r.ExceptionErrorMessage = appErr.Error()
	r.ExceptionErrorMessageID = appErr.Code
	if appErr.Cause != nil {
		r.ExceptionCausedBy = appErr.Cause.Error()
	}
	r.ExceptionSystemAction, r.ExceptionUserAction = actionsFor(appErr)
	if len(appErr.Details) > 0 {
		r.ExceptionProperties = make(map[string]interface{}, len(appErr.Details))
		for k, v := range appErr.Details {
			r.ExceptionProperties[k] = v
		}
	}
}

func actionsFor(appErr *errors.AppError) (system, user string) {
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeNotFound, errors.ErrorTypeConflict:
		return "The system is unable to process the request.",
			"Correct the parameter values and retry the request."
	case errors.ErrorTypeAuthentication, errors.ErrorTypeAuthorization:
		return "The request is rejected.",
			"Ask the server administrator for access to the requested metadata."
	default:
		return "The system is unable to complete the request because of a problem in the metadata store.",
			"Review the server log for errors and retry the request once the problem is fixed."
	}
}
