// @title           waselni API
// @version         1.0
// @description     API площадки попутной доставки посылок Франция - Тунис.
// @host            localhost:4000
// @BasePath        /

package main

import "waselni_backend/internal/app"

func main() {
	app.Run()
}
