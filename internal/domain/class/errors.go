package class

import "errors"

var (
	ErrClassNotFound   = errors.New("class not found")
	ErrCodeNotFound    = errors.New("no class with that join code")
	ErrAlreadyMember   = errors.New("you have already joined this class")
	ErrNotMember       = errors.New("you are not a member of this class")
	ErrNotClassTeacher = errors.New("only the class teacher can do this")
)
