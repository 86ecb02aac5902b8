package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-dice-mcp/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "sides must be at least 2",
			expected: "INVALID_ARGUMENT: sides must be at least 2",
		},
		{
			name:     "unknown operation type error",
			code:     errors.CodeUnknownOperationType,
			message:  "unknown operation type: bogus",
			expected: "UNKNOWN_OPERATION_TYPE: unknown operation type: bogus",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.InvalidArgument("count out of range").
		WithMeta("field", "count").
		WithMeta("value", 101)

	s.Assert().Equal("count", err.Meta["field"])
	s.Assert().Equal(101, err.Meta["value"])

	err2 := errors.Internalf("roller failed for d%d", 20).
		WithMeta("sides", 20).
		WithMeta("count", 2)

	s.Assert().Equal(20, err2.Meta["sides"])
	s.Assert().Equal(2, err2.Meta["count"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("entropy source closed")
	wrapped := errors.Wrap(baseErr, "failed to roll die")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to roll die", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.InvalidExpression("xyz")
	wrapped := errors.Wrap(baseErr, "operation 2 failed")

	s.Assert().Equal(errors.CodeInvalidExpression, wrapped.Code)
	s.Assert().Equal("operation 2 failed", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().Equal("xyz", wrapped.Meta["expression"])
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("listener closed")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "server unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("server unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"Unimplemented", func() *errors.Error { return errors.Unimplemented("test") }, errors.CodeUnimplemented},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestDiceConstructors() {
	exprErr := errors.InvalidExpression("2x6")
	s.Assert().Equal(errors.CodeInvalidExpression, exprErr.Code)
	s.Assert().Contains(exprErr.Message, "2x6")
	s.Assert().Contains(exprErr.Message, "'2d6+3'")
	s.Assert().Contains(exprErr.Message, "'1d20'")
	s.Assert().Equal("2x6", exprErr.Meta["expression"])

	typeErr := errors.UnknownOperationType("bogus")
	s.Assert().Equal(errors.CodeUnknownOperationType, typeErr.Code)
	s.Assert().Equal("unknown operation type: bogus", typeErr.Message)
	s.Assert().Equal("bogus", typeErr.Meta["type"])
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.Internalf("random source returned %d values, expected %d", 1, 2)
	s.Assert().Equal(errors.CodeInternal, err.Code)
	s.Assert().Equal("random source returned 1 values, expected 2", err.Message)

	err2 := errors.InvalidArgumentf("invalid count: %d", 101)
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal("invalid count: 101", err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.InvalidExpression("a")
	err2 := errors.InvalidExpression("b")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	invalidErr := errors.InvalidArgument("test")
	exprErr := errors.InvalidExpression("xyz")
	typeErr := errors.UnknownOperationType("bogus")
	wrappedErr := errors.Wrap(exprErr, "wrapped")

	s.Assert().True(errors.IsInvalidExpression(exprErr))
	s.Assert().True(errors.IsInvalidExpression(wrappedErr))
	s.Assert().False(errors.IsInvalidExpression(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(exprErr))

	s.Assert().True(errors.IsUnknownOperationType(typeErr))
	s.Assert().False(errors.IsUnknownOperationType(invalidErr))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.InvalidExpression("xyz")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeInvalidExpression, errors.GetCode(err))
	s.Assert().Equal(errors.CodeInvalidExpression, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.InvalidArgument("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.InvalidArgument("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeInvalidExpression, 400},
		{errors.CodeUnknownOperationType, 400},
		{errors.CodeUnimplemented, 501},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	err := errors.InvalidExpression("xyz")

	grpcErr := errors.ToGRPCError(err)
	s.Require().Error(grpcErr)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.InvalidArgument, st.Code())
	s.Assert().Equal(err.Message, st.Message())

	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	s.Require().NotNil(info)
	s.Assert().Equal("INVALID_EXPRESSION", info.GetReason())
	s.Assert().Equal("xyz", info.GetMetadata()["expression"])

	// Round trip keeps the dice code and metadata
	back := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeInvalidExpression, errors.GetCode(back))
	s.Assert().Equal("xyz", errors.GetMeta(back)["expression"])

	// Plain status errors map by code only
	grpcErr2 := status.Error(codes.InvalidArgument, "invalid input")
	err2 := errors.FromGRPCError(grpcErr2)
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(err2))
	s.Assert().Equal("invalid input", errors.GetMessage(err2))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeInvalidExpression, codes.InvalidArgument},
		{errors.CodeUnknownOperationType, codes.InvalidArgument},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeUnimplemented, codes.Unimplemented},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
