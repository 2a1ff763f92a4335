// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown guides for the
// failures a user can fix: unreadable manifests, malformed exports or imports
// fields, bad wildcard targets and broken configuration.
package issue
