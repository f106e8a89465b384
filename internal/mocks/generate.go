package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Adapter --dir ../providers --output providers --outpkg providermock --filename adapter_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Cache --dir ../platform/cache --output platform/cache --outpkg cachemock --filename cache_mock.go
