package service

import "errors"

var (
	ErrAdmissionNotFound        = errors.New("admission not found")
	ErrEmailRequired            = errors.New("email is required")
	ErrDuplicateStudentID       = errors.New("student_id already exists")
	ErrDuplicateAdmissionNumber = errors.New("admission_number already exists")
	ErrDuplicateEmail           = errors.New("a user with this email already exists")
	ErrAlreadyApproved          = errors.New("admission is already approved")
	ErrStudentIDImmutable       = errors.New("student_id cannot be changed once set")
)
