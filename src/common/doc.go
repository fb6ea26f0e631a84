// Package common contains helpers shared by the packages of this module.
package common
