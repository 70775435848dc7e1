// Package storagemock has the storage mocks.
package storagemock

//go:generate mockery --case underscore --output . --outpkg storagemock --dir .. --name Repository --structname MockRepository --filename mocks.go
