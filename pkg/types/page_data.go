package types

import "html/template"

type NavbarData struct {
	Role      Role
	IsEditor  bool
	IsAdmin   bool
	Lang      Language
	Languages []Language
	CSRFField template.HTML
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Labels Labels
	Navbar NavbarData
	Notice string
	Error  string
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

type LoginPageData struct {
	BasePageData
	Next string
}
