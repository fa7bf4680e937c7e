// Package domain contains the core entities of the marketplace: users and the
// providers built from them, portfolio projects, notifications and chats.
// The types carry no infrastructure concerns so that storage, services and the
// HTTP layer can share them.
package domain
