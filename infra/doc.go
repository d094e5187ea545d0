// Package infra contains technical adapters: storage, logging,
// metrics exporters and MQTT transport. These packages depend only
// on the interfaces defined in the core packages.
package infra
