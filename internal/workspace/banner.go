package workspace

// repository is printed in the completion banner.
const repository = "https://github.com/pygym/pygym"

// finishedBanner is printed once, when the last pending exercise turns DONE.
const finishedBanner = `
+---------------------------------------------------------+
|             You made it to the finish line!             |
+---------------------------------------------------------+
                                                       .
        .++         \/                             :***-
   -=.   +@=        .:                             .+@=.
    -*+-.:+%*:     :*=                           :+#*:
      :=**+*@@#=:. :#+             ::  .:   .:=*%@%+:
         .:-*@@@@%#+##=:-=--=+----*%%*#*+=+*%@@@@@*:
             =#@@@%#%@@@@@@@@@@@@@@@@@@#-:..=**=..
               -#=  -#@@%@@@@@@@@@@@%@#-
               .:    :*@@@@@@@@@@@@@@@=
                      -@@#**%@@#++*@@@-
                     .=@@-   ##:   #@@=
                      =@@%%%%%%%%%%@@@=
                      -@@@@@@@@@@@@@@@+
                      :#@@@@@@@@@@@@%#=.
                       .+*%@@@@@@@#-.
                          .::=#*:..

Congratulations, you have completed all exercises!

If you'd like to contribute or add more exercises, visit:
  - ` + repository + `
`
