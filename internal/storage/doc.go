// Package storage implements the durable document store and the three
// repositories (reminders, settings, saved tips) built on top of it. Each
// repository exclusively owns one persisted JSON document.
package storage
