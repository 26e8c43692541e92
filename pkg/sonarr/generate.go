package sonarr

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_sonarr_client.go github.com/packarr/packarr/pkg/sonarr ClientInterface
