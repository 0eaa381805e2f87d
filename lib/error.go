package lib

import (
	"fmt"
	"math"
)

// ErrorI is the canonical error type of the node: a coded error that identifies
// the module it originated from, allowing the RPC layer to map it to an HTTP status
type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeJSONMarshal    ErrorCode = 1
	CodeJSONUnmarshal  ErrorCode = 2
	CodeStringToBytes  ErrorCode = 3
	CodeWriteFile      ErrorCode = 4
	CodeReadFile       ErrorCode = 5
	CodeEmptyValue     ErrorCode = 6
	CodeValueTooLarge  ErrorCode = 7
	CodeLogWrite       ErrorCode = 8
	CodeInvalidLogForm ErrorCode = 9

	// Crypto Module
	CryptoModule ErrorModule = "crypto"

	// Crypto Module Error Codes
	CodeUnknownHashAlgorithm ErrorCode = 1
	CodeUnknownOddNodePolicy ErrorCode = 2
	CodeEmptyTree            ErrorCode = 3
	CodeInvalidLeafIndex     ErrorCode = 4
	CodeMalformedProof       ErrorCode = 5
	CodeNilHasher            ErrorCode = 6

	// Storage Module
	StorageModule ErrorModule = "store"

	// Storage Module Error Codes
	CodeOpenDB             ErrorCode = 1
	CodeCloseDB            ErrorCode = 2
	CodeStoreSet           ErrorCode = 3
	CodeStoreGet           ErrorCode = 4
	CodeStoreIterate       ErrorCode = 5
	CodeCommitmentNotFound ErrorCode = 6
	CodeRootConflict       ErrorCode = 7

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeRPCTimeout    ErrorCode = 1
	CodeInvalidParams ErrorCode = 2
	CodePostRequest   ErrorCode = 3
	CodeGetRequest    ErrorCode = 4
	CodeHttpStatus    ErrorCode = 5
	CodeReadBody      ErrorCode = 6
	CodeServerDown    ErrorCode = 7
)

// main module error constructors below

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json.Marshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json.Unmarshal() failed with err: %s", err.Error()))
}

func ErrStringToBytes(err error) ErrorI {
	return NewError(CodeStringToBytes, MainModule, fmt.Sprintf("stringToBytes() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("os.ReadFile() failed with err: %s", err.Error()))
}

func ErrEmptyValue() ErrorI {
	return NewError(CodeEmptyValue, MainModule, "value is empty")
}

func ErrValueTooLarge(size, max int) ErrorI {
	return NewError(CodeValueTooLarge, MainModule, fmt.Sprintf("value of %d bytes exceeds the %d byte maximum", size, max))
}
