package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. It always surfaces to the originating caller; swallowing it would be
// silent data loss.
var ErrPersistence = fmt.Errorf("messaging use case persistence error")
