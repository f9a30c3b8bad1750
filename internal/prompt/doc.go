// Package prompt asks the operator yes/no questions on the console.
package prompt
